// Package dingtalk provides a Go client for the DingTalk open platform
// v1.0 REST APIs.
//
// The client exchanges application credentials (appKey/appSecret) for an
// access token at the oauth2/accessToken endpoint, caches it until a safety
// margin before expiry, and carries it on every call in the
// x-acs-dingtalk-access-token header.
//
// # Usage
//
//	client := dingtalk.NewClient(appKey, appSecret,
//	    dingtalk.WithRobotCode(robotCode))
//	_, err := client.Robot.SendText(ctx, userID, "构建完成")
//
// A vendor error body ({code, message}) is surfaced as *Error; network
// failures and undecodable bodies are wrapped transport errors. The client
// performs no retries.
package dingtalk

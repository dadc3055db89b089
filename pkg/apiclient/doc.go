// Package apiclient はEagle Bank REST APIとのHTTP通信を行うクライアントを提供する。
//
// すべてのリソース操作（ユーザー、口座、取引）はこのパッケージを経由する。
// Bearerトークンの付与、エラーの正規化、401受信時のトークン破棄と
// 有効期限切れ通知など、通信にまつわる責務を一箇所に集約する。
package apiclient

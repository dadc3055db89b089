// Package middleware はGinベースのローカルUIサーバーで使用する共通ミドルウェアを提供する。
//
// セッション確認によるログイン画面へのリダイレクト、リクエストID付与、
// アクセスログ、パニックリカバリを含む。
package middleware

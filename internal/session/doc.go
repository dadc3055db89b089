// Package session はプロセス全体で共有する認証状態を管理する。
//
// ログイン・ログアウト・トークン有効期限切れのライフサイクルを
// apiclientの上に束ね、画面側へは状態と真偽値だけを公開する。
// apiclientのエラーがこのパッケージの境界を越えて伝播することはない。
package session

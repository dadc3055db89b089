// Eagle Bankカスタマーコンソールのエントリポイント。
// ローカルで起動する1ユーザー向けのWebコンソールであり、
// バックエンドAPIへの接続とセッション復元を行ってから画面サーバーを起動する。
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/eaglebank/console/internal/config"
	"github.com/eaglebank/console/internal/session"
	"github.com/eaglebank/console/internal/tokenstore"
	"github.com/eaglebank/console/internal/webapp"
	"github.com/eaglebank/console/pkg/apiclient"
	"github.com/eaglebank/console/pkg/logger"
	"github.com/eaglebank/console/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		Output: os.Stderr,
	})

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	store, err := tokenstore.Open(dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("トークンストアのオープンに失敗: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("トークンストアのクローズに失敗")
		}
	}()

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTokenStore(store),
		apiclient.WithObserver(metrics.ObserveAPIRequest),
		apiclient.WithLogger(log),
	)

	var opts []session.Option
	if cfg.StrictStartup {
		opts = append(opts, session.WithStrictStartup())
	}
	sess := session.New(client, log, opts...)
	sess.OnExpired(func() {
		metrics.SessionExpiriesTotal.Inc()
	})

	// 保存済みトークンがあればセッションを復元する
	sess.Start(ctx)
	log.Info().Str("state", sess.State().String()).Msg("セッションの初期化が完了した")

	server, err := webapp.NewServer(cfg.Port, client, sess, log)
	if err != nil {
		return fmt.Errorf("コンソールサーバーの初期化に失敗: %w", err)
	}

	log.Info().Str("port", cfg.Port).Str("api_base_url", cfg.APIBaseURL).
		Msg("コンソールサーバーを起動します")
	return server.Run()
}

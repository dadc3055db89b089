// Package metrics はコンソールアプリのPrometheusメトリクスを定義する。
//
// メトリクス名・ラベル・ヘルプ文字列の唯一の定義場所。promautoにより
// パッケージ読み込み時にデフォルトレジストリへ登録される。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// APIRequestsTotal はバックエンドAPIへのリクエスト数。
// ラベル:
//   - method: HTTPメソッド
//   - status: HTTPステータスコード。通信断の場合は "0"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests issued to the banking API, by method and status.",
	},
	[]string{"method", "status"},
)

// APIRequestDuration はバックエンドAPIリクエストの所要時間。
// ラベル:
//   - method: HTTPメソッド
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of requests issued to the banking API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionExpiriesTotal はセッション有効期限切れ（401による強制ログアウト）の回数。
var SessionExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expiries_total",
		Help:      "Total number of forced logouts caused by an expired session.",
	},
)

// ObserveAPIRequest はapiclient.RequestObserverとして登録するための観測関数。
// パスはIDを含みカーディナリティが高いためラベルにしない。
func ObserveAPIRequest(method, _ string, status int, elapsed time.Duration) {
	APIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

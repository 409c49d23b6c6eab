// Package http builds outbound HTTP clients for the email and SMS providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is used when a provider config leaves its timeout unset.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient は外部プロバイダー呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConnsPerHost: 送信先は1プロバイダーのみのため少数に制限
//   - ResponseHeaderTimeout: ヘッダー受信までの最大時間（全体タイムアウト以下）
//   - Client.Timeout: リクエスト全体のタイムアウト（0以下の場合はDefaultTimeout）
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

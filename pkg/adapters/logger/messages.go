package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %s with flag %s...":  "%s をフラグ %s でレンダリング中...",
		"Output saved to %s":            "出力を %s に保存しました",
		"Render completed successfully": "レンダリングが正常に完了しました",
		"Starting render":               "レンダリングを開始します",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Photo decoded: %dx%d":          "写真をデコードしました: %dx%d",
		"Rendered %d bytes":             "%d バイトをレンダリングしました",

		// Compose stage
		"Validating output surface %dx%d":       "出力サーフェス %dx%d を検証中",
		"Downsampling source %dx%d to %dx%d":    "ソース %dx%d を %dx%d にダウンサンプリング中",
		"Drawing photo at offset (%.2f, %.2f)":  "写真をオフセット (%.2f, %.2f) に描画中",
		"Drawing %s border":                     "%s ボーダーを描画中",
		"Border unavailable, rendering without": "ボーダーが利用できないため、ボーダーなしでレンダリングします",
		"Encoding PNG":                          "PNG をエンコード中",
		"Flag bitmap cache hit for %s":          "フラグビットマップキャッシュにヒット: %s",
		"Decoded flag bitmap for %s":            "フラグビットマップをデコード: %s",

		// Failures
		"Failed to read photo: %s":   "写真の読み込みに失敗しました: %s",
		"Failed to decode photo: %s": "写真のデコードに失敗しました: %s",
		"Failed to render: %s":       "レンダリングに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}

package redisx

import "time"

const (
	// ポーリング用のステータスキャッシュ: order_status:{order_id} -> status
	KeyOrderStatus = "order_status:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
)

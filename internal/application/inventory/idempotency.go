package inventory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const maxIdempotencyKeyLen = 64

// validIdempotencyKey enforces spec.md §4.1: "non-empty string, ≤ 64
// chars", missing or blank fails with InvalidArgument at the call site.
func validIdempotencyKey(key string) bool {
	return key != "" && len(key) <= maxIdempotencyKeyLen
}

// receiptLineForKey is the (product_id, qty_received) pair sorted
// ascending by product_id for the derived goods-receipt key (spec.md §6).
type receiptLineForKey struct {
	ProductID   int64
	QtyReceived decimal.Decimal
}

// deriveGoodsReceiptKey computes the fallback idempotency key for a goods
// receipt when the caller omits the Idempotency-Key header, per spec.md §6:
//
//	sha256("GR:" + site_id + ":" + po_id + ":" + to_location_id + ":" +
//	       received_at_iso + ":" + sorted_lines)
func deriveGoodsReceiptKey(siteID, poID, toLocationID int64, receivedAt time.Time, lines []receiptLineForKey) string {
	sorted := make([]receiptLineForKey, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	buf := fmt.Sprintf("GR:%d:%d:%d:%s:%s", siteID, poID, toLocationID, receivedAt.UTC().Format(time.RFC3339Nano), formatSortedLines(sorted))
	sum := sha256.Sum256([]byte(buf))
	return hex.EncodeToString(sum[:])
}

// deriveGoodsReceiptMovementKey computes the per-line movement idempotency
// key derived from the receipt key, per spec.md §6:
//
//	sha256("GRMOVE:" + receipt_key + ":" + product_id + ":" + to_location_id +
//	       ":" + received_at_iso + ":" + qty_received)
func deriveGoodsReceiptMovementKey(receiptKey string, productID, toLocationID int64, receivedAt time.Time, qtyReceived decimal.Decimal) string {
	buf := fmt.Sprintf("GRMOVE:%s:%d:%d:%s:%s", receiptKey, productID, toLocationID, receivedAt.UTC().Format(time.RFC3339Nano), qtyReceived.String())
	sum := sha256.Sum256([]byte(buf))
	return hex.EncodeToString(sum[:])
}

func formatSortedLines(lines []receiptLineForKey) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("(%d,%s)", l.ProductID, l.QtyReceived.String())
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return "[" + out + "]"
}

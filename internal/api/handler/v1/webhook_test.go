package v1

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup-labs/huddleup-api/internal/chain"
)

type fakeIngestor struct {
	events []chain.Event
	err    error
}

func (f *fakeIngestor) Ingest(_ context.Context, event chain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func newWebhookRouter(ingestor *fakeIngestor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/alchemy", NewWebhookHandler("webhook-test-key", ingestor).HandleChainWebhook)

	return router
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte("webhook-test-key"))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

func webhookBody(t *testing.T) []byte {
	t.Helper()

	payload := map[string]any{
		"event": map[string]any{
			"data": map[string]any{
				"block": map[string]any{
					"number": 123,
					"logs": []map[string]any{
						{
							"topics": []string{
								eventFundedTopic(t),
								"0x0000000000000000000000002222222222222222222222222222222222222222",
							},
							"data":  eventFundedData(t, "event-1", 500),
							"index": 0,
							"account": map[string]any{
								"address": "0x1111111111111111111111111111111111111111",
							},
							"transaction": map[string]any{
								"hash": "0xaa00000000000000000000000000000000000000000000000000000000000000",
							},
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return body
}

func TestHandleChainWebhook(t *testing.T) {
	ingestor := &fakeIngestor{}
	router := newWebhookRouter(ingestor)

	body := webhookBody(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/alchemy", bytes.NewReader(body))
	req.Header.Set("x-alchemy-signature", signBody(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, ingestor.events, 1)

	event := ingestor.events[0]
	assert.Equal(t, chain.EventFunded, event.Name)
	assert.Equal(t, "event-1", event.EventID)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", event.Wallet)
	assert.Equal(t, 500.0, event.Amount)
	assert.Equal(t, uint64(123), event.BlockNumber)
}

func TestHandleChainWebhook_InvalidSignature(t *testing.T) {
	ingestor := &fakeIngestor{}
	router := newWebhookRouter(ingestor)

	body := webhookBody(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/alchemy", bytes.NewReader(body))
	req.Header.Set("x-alchemy-signature", "0badc0de")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, ingestor.events)
}

func TestHandleChainWebhook_MissingSignature(t *testing.T) {
	ingestor := &fakeIngestor{}
	router := newWebhookRouter(ingestor)

	body := webhookBody(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/alchemy", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleChainWebhook_IngestFailureReturns500(t *testing.T) {
	ingestor := &fakeIngestor{err: fmt.Errorf("graph unavailable")}
	router := newWebhookRouter(ingestor)

	body := webhookBody(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/alchemy", bytes.NewReader(body))
	req.Header.Set("x-alchemy-signature", signBody(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// A processing failure must fail the whole call so the sender retries.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleChainWebhook_SkipsUnknownLogs(t *testing.T) {
	ingestor := &fakeIngestor{}
	router := newWebhookRouter(ingestor)

	payload := map[string]any{
		"event": map[string]any{
			"data": map[string]any{
				"block": map[string]any{
					"number": 50,
					"logs": []map[string]any{
						{
							"topics": []string{
								"0x0101010101010101010101010101010101010101010101010101010101010101",
								"0x0202020202020202020202020202020202020202020202020202020202020202",
							},
							"data":  "0x",
							"index": 0,
							"account": map[string]any{
								"address": "0x1111111111111111111111111111111111111111",
							},
							"transaction": map[string]any{"hash": "0xababab"},
						},
					},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook/alchemy", bytes.NewReader(body))
	req.Header.Set("x-alchemy-signature", signBody(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ingestor.events)
}

const eventFundedABIJSON = `[
  {"type":"event","name":"EventFunded","anonymous":false,"inputs":[
    {"name":"sponsor","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]}
]`

func eventFundedABI(t *testing.T) abi.ABI {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(eventFundedABIJSON))
	require.NoError(t, err)

	return parsed
}

// eventFundedTopic is keccak256 of the EventFunded signature.
func eventFundedTopic(t *testing.T) string {
	return eventFundedABI(t).Events["EventFunded"].ID.Hex()
}

func eventFundedData(t *testing.T, eventID string, amount int64) string {
	t.Helper()

	data, err := eventFundedABI(t).Events["EventFunded"].Inputs.NonIndexed().Pack(
		eventID,
		new(big.Int).Mul(big.NewInt(amount), big.NewInt(1_000_000)),
	)
	require.NoError(t, err)

	return "0x" + common.Bytes2Hex(data)
}

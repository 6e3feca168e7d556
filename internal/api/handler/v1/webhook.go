package v1

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
	"github.com/huddleup-labs/huddleup-api/internal/chain"
)

// webhookPayload is the push-notification shape delivered by the node
// provider: one block with the contract logs that matched the filter.
type webhookPayload struct {
	Event struct {
		Data struct {
			Block struct {
				Number uint64 `json:"number"`
				Logs   []struct {
					Topics  []string `json:"topics"`
					Data    string   `json:"data"`
					Index   uint     `json:"index"`
					Account struct {
						Address string `json:"address"`
					} `json:"account"`
					Transaction struct {
						Hash string `json:"hash"`
					} `json:"transaction"`
				} `json:"logs"`
			} `json:"block"`
		} `json:"data"`
	} `json:"event"`
}

type WebhookIngestor interface {
	Ingest(ctx context.Context, event chain.Event) error
}

type WebhookHandler struct {
	signingKey []byte
	ingestor   WebhookIngestor
}

func NewWebhookHandler(signingKey string, ingestor WebhookIngestor) *WebhookHandler {
	return &WebhookHandler{
		signingKey: []byte(signingKey),
		ingestor:   ingestor,
	}
}

// HandleChainWebhook godoc
// @Summary      Receive pushed contract logs from the node provider
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        x-alchemy-signature  header  string true "HMAC-SHA256 of the raw body"
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  response.Err
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /webhook/alchemy [post]
func (h *WebhookHandler) HandleChainWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if !h.validSignature(body, ctx.GetHeader("x-alchemy-signature")) {
		response.RenderErr(ctx, response.ErrUnauthorized("invalid webhook signature"))
		return
	}

	var payload webhookPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	block := payload.Event.Data.Block
	ingested := 0

	for _, lg := range block.Logs {
		event, err := decodeWebhookLog(block.Number, lg.Topics, lg.Data, lg.Index, lg.Account.Address, lg.Transaction.Hash)
		if err != nil {
			// A single malformed or irrelevant log never fails the batch.
			zap.L().Warn("skipping webhook log",
				zap.String("tx_hash", lg.Transaction.Hash),
				zap.Uint("log_index", lg.Index),
				zap.Error(err))
			continue
		}

		if err = h.ingestor.Ingest(ctx.Request.Context(), event); err != nil {
			// Failing the whole call triggers the sender's retry policy.
			err = fmt.Errorf("v1.HandleChainWebhook -> h.ingestor.Ingest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		ingested++
	}

	ctx.JSON(http.StatusOK, gin.H{"ingested": ingested})
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, h.signingKey)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func decodeWebhookLog(blockNumber uint64, topics []string, data string, index uint, address, txHash string) (chain.Event, error) {
	rawTopics := make([]common.Hash, 0, len(topics))
	for _, t := range topics {
		rawTopics = append(rawTopics, common.HexToHash(t))
	}

	rawData, err := hex.DecodeString(trimHexPrefix(data))
	if err != nil {
		return chain.Event{}, fmt.Errorf("hex.DecodeString -> %w", err)
	}

	return chain.DecodeLog(types.Log{
		Address:     common.HexToAddress(address),
		Topics:      rawTopics,
		Data:        rawData,
		BlockNumber: blockNumber,
		TxHash:      common.HexToHash(txHash),
		Index:       index,
	})
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}

	return s
}

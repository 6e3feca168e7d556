package service

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
)

func TestWalletFromClaims_ExternalAddress(t *testing.T) {
	claims := &providerClaims{}
	claims.Wallets = []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
		Type      string `json:"type"`
		Curve     string `json:"curve"`
	}{
		{Address: "0xAbCdEf0123456789aBcDeF0123456789abCDef01", Type: "ethereum"},
	}

	wallet, method, err := walletFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", wallet)
	assert.Equal(t, domain.ConnectionMetamask, method)
}

func TestWalletFromClaims_CompressedPublicKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	compressed := hex.EncodeToString(crypto.CompressPubkey(&key.PublicKey))
	want := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	claims := &providerClaims{}
	claims.Wallets = []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
		Type      string `json:"type"`
		Curve     string `json:"curve"`
	}{
		{PublicKey: compressed, Type: "web3auth_app_key", Curve: "secp256k1"},
	}

	wallet, method, err := walletFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, want, wallet)
	assert.Equal(t, domain.ConnectionOther, method)
}

func TestWalletFromClaims_UncompressedPublicKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	uncompressed := hex.EncodeToString(crypto.FromECDSAPub(&key.PublicKey))
	want := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	claims := &providerClaims{}
	claims.Wallets = []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
		Type      string `json:"type"`
		Curve     string `json:"curve"`
	}{
		{PublicKey: uncompressed, Type: "social_login_key", Curve: "secp256k1"},
	}

	wallet, method, err := walletFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, want, wallet)
	assert.Equal(t, domain.ConnectionGoogle, method)
}

func TestWalletFromClaims_NoUsableWallet(t *testing.T) {
	claims := &providerClaims{}
	claims.Wallets = []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
		Type      string `json:"type"`
		Curve     string `json:"curve"`
	}{
		{PublicKey: "deadbeef", Type: "web3auth_app_key", Curve: "ed25519"},
	}

	_, _, err := walletFromClaims(claims)
	assert.ErrorIs(t, err, ErrNoWalletInToken)
}

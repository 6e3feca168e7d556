package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type VerifyJWTRequest struct {
	IDToken string `json:"id_token"`
}

func (req *VerifyJWTRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IDToken, validation.Required),
	)
}

type VerifyExternalWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

func (req *VerifyExternalWalletRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WalletAddress, validation.Required, validation.Match(walletAddressPattern)),
	)
}

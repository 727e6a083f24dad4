package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	evmAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	bscTxHashRe  = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

func IsValidWalletAddress(address string) bool {
	return evmAddressRe.MatchString(address)
}

func IsValidBscTxHash(hash string) bool {
	return bscTxHashRe.MatchString(hash)
}

// GenerateNonce returns a 32-hex-char login challenge.
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// VerifyPersonalSign checks a MetaMask personal_sign signature: the message is
// hashed with the Ethereum signed-message prefix and the signer address is
// recovered from the signature.
func VerifyPersonalSign(address, signature, message string) bool {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != 65 {
		return false
	}
	// personal_sign yields V in {27,28}; crypto.SigToPub expects {0,1}.
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	msg := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256([]byte(msg))

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	return strings.EqualFold(recovered.Hex(), address)
}

// ErrBadSignature is returned by login when signature recovery fails.
var ErrBadSignature = errors.New("invalid wallet signature")

package payload

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
)

const InvocationVersion = "1"

// Invocation is one signed call of a contract method. Every address which
// must authorize the call, like the voter of `cast_vote` or the
// administrator, adds its `Authorization`.
type Invocation struct {
	T              string           `json:"type"`
	H              InvocationHeader `json:"header"`
	B              InvocationBody   `json:"body"`
	Authorizations []Authorization  `json:"authorizations"`
}

type InvocationHeader struct {
	Version string `json:"version"`
	Created string `json:"created"`
	Hash    string `json:"hash"`
}

type InvocationBody struct {
	ExecCode ExecCode `json:"exec_code"`
	Nonce    string   `json:"nonce"`
}

type Authorization struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

func (ib InvocationBody) MakeHash() []byte {
	return common.MustMakeObjectHash(ib)
}

func (ib InvocationBody) MakeHashString() string {
	return base58.Encode(ib.MakeHash())
}

func NewInvocation(code ExecCode) Invocation {
	body := InvocationBody{
		ExecCode: code,
		Nonce:    uuid.New().String(),
	}

	return Invocation{
		T: "invocation",
		H: InvocationHeader{
			Version: InvocationVersion,
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B:              body,
		Authorizations: []Authorization{},
	}
}

func (i Invocation) GetHash() string {
	return i.H.Hash
}

func (i Invocation) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(i)
	return
}

func (i Invocation) String() string {
	encoded, _ := json.MarshalIndent(i, "", "  ")
	return string(encoded)
}

// Sign adds the authorization of `kp`. The signature of the same address is
// replaced.
func (i *Invocation) Sign(kp keypair.KP, networkID []byte) {
	i.H.Hash = i.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, i.H.Hash)

	authorization := Authorization{
		Address:   kp.Address(),
		Signature: base58.Encode(signature),
	}

	for n, a := range i.Authorizations {
		if a.Address == authorization.Address {
			i.Authorizations[n] = authorization
			return
		}
	}
	i.Authorizations = append(i.Authorizations, authorization)
}

// Signers returns the addresses of the authorizations.
func (i Invocation) Signers() []string {
	var addresses []string
	for _, a := range i.Authorizations {
		addresses = append(addresses, a.Address)
	}

	return addresses
}

package payload

import "boscoin.io/votebook/lib/common"

// ExecCode calls `Method` of the contract at `ContractAddress`. The
// arguments are parsed by the method.
type ExecCode struct {
	ContractAddress string   `json:"contract_address"`
	Method          string   `json:"method"`
	Args            []string `json:"args"`
}

func NewExecCode(contractAddress, method string, args ...string) ExecCode {
	if args == nil {
		args = []string{}
	}

	return ExecCode{
		ContractAddress: contractAddress,
		Method:          method,
		Args:            args,
	}
}

func (ec *ExecCode) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(ec)
	return
}

func (ec *ExecCode) Deserialize(encoded []byte) (err error) {
	err = common.DecodeJSONValue(encoded, ec)
	return
}

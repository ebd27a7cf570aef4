package voting

import (
	"encoding/json"

	"boscoin.io/votebook/lib/common"
)

const NotFoundText = "Not_Found"

type Proposal struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	IsActive    bool   `json:"is_active"`
}

func NewProposal(id uint64, title, description string) Proposal {
	return Proposal{
		ID:          id,
		Title:       title,
		Description: description,
		IsActive:    true,
	}
}

// NotFoundProposal is returned by `ViewProposal` for unknown ids.
func NotFoundProposal() Proposal {
	return Proposal{
		ID:          0,
		Title:       NotFoundText,
		Description: NotFoundText,
	}
}

func (p Proposal) IsNotFound() bool {
	return p.ID == 0
}

func (p Proposal) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

func (p Proposal) String() string {
	return string(common.MustMarshalJSON(p))
}

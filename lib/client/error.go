package client

import (
	"fmt"
)

// Error is the problem returned by the node.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	if len(e.Problem.Detail) > 0 {
		return fmt.Sprintf("%s: %s (code=%d status=%d)", e.Problem.Title, e.Problem.Detail, e.Problem.Code, e.Problem.Status)
	}
	return fmt.Sprintf("%s (code=%d status=%d)", e.Problem.Title, e.Problem.Code, e.Problem.Status)
}

// Code returns the code of the error, like `errors.AlreadyVoted.Code`; 0 when
// the problem was not made from the node error.
func (e Error) Code() uint {
	return e.Problem.Code
}

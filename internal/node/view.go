package node

import (
	"context"
	"fmt"
)

// viewRequest mirrors the node's view endpoint body.
type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

// View evaluates a read-only function against deployed program state and
// returns the decoded result tuple.
func (s *Service) View(ctx context.Context, function string, typeArgs, args []string) ([]interface{}, error) {
	if typeArgs == nil {
		typeArgs = []string{}
	}
	if args == nil {
		args = []string{}
	}

	var out []interface{}
	err := s.postJSON(ctx, s.baseURL+"/v1/view", viewRequest{
		Function:      function,
		TypeArguments: typeArgs,
		Arguments:     args,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", function, err)
	}
	return out, nil
}

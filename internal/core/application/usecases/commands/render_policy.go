package commands

import (
	"fmt"

	"codeorders/internal/pkg/errs"
)

// RenderPolicy decides what happens when a record cannot be rendered.
type RenderPolicy string

const (
	// RenderPolicyCollect skips failed records, reports them next to the bundle and
	// completes the order.
	RenderPolicyCollect RenderPolicy = "collect"
	// RenderPolicyFailFast fails the order on the first record, in generation order,
	// that cannot be rendered.
	RenderPolicyFailFast RenderPolicy = "fail_fast"
)

// ParseRenderPolicy accepts "collect" and "fail_fast".
func ParseRenderPolicy(s string) (RenderPolicy, error) {
	switch p := RenderPolicy(s); p {
	case RenderPolicyCollect, RenderPolicyFailFast:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("render policy", fmt.Errorf("%q is not collect or fail_fast", s))
	}
}

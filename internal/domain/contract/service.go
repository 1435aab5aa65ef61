package contract

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
)

type ContractService interface {
	RenewTrial(ctx context.Context, actor audit.Actor, contractID string) (TransitionResponse, error)
	ConvertToCDD(ctx context.Context, actor audit.Actor, contractID string, req ConvertToCDDRequest) (TransitionResponse, error)
	ConvertToCDI(ctx context.Context, actor audit.Actor, contractID string) (TransitionResponse, error)
	Terminate(ctx context.Context, actor audit.Actor, contractID string, req TerminateRequest) (TransitionResponse, error)
}

package domain

import "errors"

var (
	ErrDealNotFound        = errors.New("deal not found")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrNoPendingApproval   = errors.New("no pending approval found")
	ErrNoWorkflowAvailable = errors.New("no approval workflow available")
	ErrDealTerminal        = errors.New("deal is already approved or rejected")
)

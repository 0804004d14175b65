package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

// DefaultBulkStopReason is applied when a batch stoppage names no reason
// (the quick-order workflow).
const DefaultBulkStopReason = "Không có đơn hàng"

// Codes arrive as free text from uploaded lists; any run of newline, comma,
// semicolon or tab separates entries.
var codeSeparators = regexp.MustCompile(`[\r\n,;\t]+`)

// ParseCodes normalizes uploaded text into machine codes: split, trim,
// upper-case, drop empties. An empty result means the upload held no codes at
// all, which callers report differently from "no running machine matched".
func ParseCodes(text string) []string {
	var out []string
	for _, tok := range codeSeparators.Split(text, -1) {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// BulkService matches normalized code lists against the running machines and
// stops the matches one transition at a time.
type BulkService struct {
	machineRepo repository.MachineRepo
	transition  Transition
}

func NewBulkService(machineRepo repository.MachineRepo, transition Transition) *BulkService {
	return &BulkService{machineRepo: machineRepo, transition: transition}
}

// Match returns the RUNNING machines whose case-folded code is in codes.
// Unmatched codes are ignored; an empty result is an outcome, not an error.
func (s *BulkService) Match(ctx context.Context, codes []string) ([]models.Machine, error) {
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	machines, err := s.machineRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	var out []models.Machine
	for _, m := range machines {
		if m.Status == models.StatusRunning && wanted[strings.ToUpper(m.Code)] {
			out = append(out, m)
		}
	}
	return out, nil
}

// StopMatched stops each machine independently; one failure does not roll
// back or abort the rest.
func (s *BulkService) StopMatched(ctx context.Context, ids []string, reason string, at time.Time) BulkStopResult {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultBulkStopReason
	}

	res := BulkStopResult{}
	for _, id := range ids {
		err := s.transition.Set(ctx, TransitionParams{
			MachineID: id,
			Status:    models.StatusStopped,
			Reason:    reason,
			At:        at,
		})
		if err != nil {
			if res.Failed == nil {
				res.Failed = make(map[string]string)
			}
			res.Failed[id] = err.Error()
			continue
		}
		res.Stopped = append(res.Stopped, id)
	}
	return res
}

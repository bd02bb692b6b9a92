package validation

import (
	"errors"
	"fmt"

	"github.com/mattjh/pokernight-go/internal/model"
)

// ErrMalformedSubmission indicates the submission was not a well-formed
// list of ending values.
var ErrMalformedSubmission = errors.New("ending values must be a list with one entry per player")

// DuplicateEntryError indicates a player appeared more than once in
// the submission.
type DuplicateEntryError struct {
	PlayerID model.PlayerID
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate ending value entry for player %s", e.PlayerID)
}

// CountMismatchError indicates the number of submitted entries differs
// from the number of players in the game.
type CountMismatchError struct {
	Expected int
	Received int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d ending values, received %d", e.Expected, e.Received)
}

// MissingPlayerError indicates a player in the game has no submitted
// ending value.
type MissingPlayerError struct {
	PlayerID   model.PlayerID
	PlayerName string
}

func (e *MissingPlayerError) Error() string {
	return fmt.Sprintf("missing ending value for player %s", e.PlayerName)
}

// NonNumericError indicates a submitted ending value is not a finite
// number.
type NonNumericError struct {
	PlayerID   model.PlayerID
	PlayerName string
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("invalid ending value for player %s", e.PlayerName)
}

// ImbalanceError indicates total buy-ins and total ending values do not
// balance. Difference is TotalBuyIns - TotalEndings in money units.
type ImbalanceError struct {
	TotalBuyIns  int
	TotalEndings float64
	Difference   float64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("totals do not balance: buy-ins %d, endings %.2f (difference %.2f)",
		e.TotalBuyIns, e.TotalEndings, e.Difference)
}

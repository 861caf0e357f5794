package clone

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/panicerr"
)

// CloneBoards replicates every template board of templateTeam onto the
// matching target board of targetTeam. Boards match by case-insensitive
// name; a template board with zero or several matches is skipped. The four
// board artifact kinds (columns, rows, card settings, card rules) are
// mutually independent and replicate concurrently, joined per board.
func (t *TeamReplicator) CloneBoards(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam string) error {
	templateBoards, err := t.work.ListBoards(ctx, template.Name, templateTeam)
	if err != nil {
		return err
	}
	targetBoards, err := t.work.ListBoards(ctx, target.Name, targetTeam)
	if err != nil {
		return err
	}

	for _, templateBoard := range templateBoards {
		targetBoard, ok := matchBoard(targetBoards, templateBoard.Name)
		if !ok {
			slog.WarnContext(ctx, "no unique target board match, skipping", "board", templateBoard.Name)
			continue
		}

		p := pool.New().WithErrors().WithContext(ctx)
		p.Go(panicerr.SafeContext(func(ctx context.Context) error {
			return t.cloneBoardColumns(ctx, template, target, templateTeam, targetTeam, templateBoard.Name, targetBoard.Name)
		}))
		p.Go(panicerr.SafeContext(func(ctx context.Context) error {
			return t.cloneBoardRows(ctx, template, target, templateTeam, targetTeam, templateBoard.Name, targetBoard.Name)
		}))
		p.Go(panicerr.SafeContext(func(ctx context.Context) error {
			return t.cloneCardSettings(ctx, template, target, templateTeam, targetTeam, templateBoard.Name, targetBoard.Name)
		}))
		p.Go(panicerr.SafeContext(func(ctx context.Context) error {
			return t.cloneCardRules(ctx, template, target, templateTeam, targetTeam, templateBoard.Name, targetBoard.Name)
		}))
		if err := p.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// matchBoard returns the single target board whose name equals name
// case-insensitively. Ambiguous or missing matches report false.
func matchBoard(boards []azdo.Board, name string) (azdo.Board, bool) {
	var found azdo.Board
	matches := 0
	for _, b := range boards {
		if strings.EqualFold(b.Name, name) {
			found = b
			matches++
		}
	}
	return found, matches == 1
}

// cloneBoardColumns writes the template's column layout to the target
// board. The platform reserves the identities of the Incoming and Outgoing
// edge columns per board, so template edge columns are rewritten to carry
// the target's reserved ids; every other column is written without an id,
// which the platform treats as a create.
func (t *TeamReplicator) cloneBoardColumns(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam, templateBoard, targetBoard string) error {
	templateColumns, err := t.work.GetBoardColumns(ctx, template.Name, templateTeam, templateBoard)
	if err != nil {
		return err
	}
	targetColumns, err := t.work.GetBoardColumns(ctx, target.Name, targetTeam, targetBoard)
	if err != nil {
		return err
	}

	var incomingID, outgoingID string
	for _, col := range targetColumns {
		switch col.ColumnType {
		case azdo.BoardColumnTypeIncoming:
			incomingID = col.ID
		case azdo.BoardColumnTypeOutgoing:
			outgoingID = col.ID
		}
	}

	columns := make([]azdo.BoardColumn, len(templateColumns))
	for i, col := range templateColumns {
		switch col.ColumnType {
		case azdo.BoardColumnTypeIncoming:
			col.ID = incomingID
		case azdo.BoardColumnTypeOutgoing:
			col.ID = outgoingID
		default:
			col.ID = ""
		}
		columns[i] = col
	}

	return t.work.UpdateBoardColumns(ctx, target.Name, targetTeam, targetBoard, columns)
}

func (t *TeamReplicator) cloneBoardRows(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam, templateBoard, targetBoard string) error {
	rows, err := t.work.GetBoardRows(ctx, template.Name, templateTeam, templateBoard)
	if err != nil {
		return err
	}
	return t.work.UpdateBoardRows(ctx, target.Name, targetTeam, targetBoard, rows)
}

func (t *TeamReplicator) cloneCardSettings(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam, templateBoard, targetBoard string) error {
	settings, err := t.work.GetCardSettings(ctx, template.Name, templateTeam, templateBoard)
	if err != nil {
		return err
	}
	return t.work.UpdateCardSettings(ctx, target.Name, targetTeam, targetBoard, settings)
}

func (t *TeamReplicator) cloneCardRules(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam, templateBoard, targetBoard string) error {
	rules, err := t.work.GetCardRules(ctx, template.Name, templateTeam, templateBoard)
	if err != nil {
		return err
	}
	return t.work.UpdateCardRules(ctx, target.Name, targetTeam, targetBoard, rules)
}

// Package minimax finds the game-theoretically optimal move on a 3x3 board.
//
// The search is exhaustive minimax with alpha-beta pruning. Scores only come
// from terminal positions (see entity.Score), so the returned value is exact.
// Candidates are tried in ascending cell order and ties keep the first move
// found, which makes the result deterministic.
package minimax

import (
	"context"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"golang.org/x/sync/errgroup"
)

// NoMove is returned when the board has no empty cell.
const NoMove = -1

const (
	minScore = entity.Score(math.MinInt)
	maxScore = entity.Score(math.MaxInt)
)

type Result struct {
	Move  int
	Score entity.Score

	// Nodes counts the positions visited, Cutoffs the alpha-beta cuts taken.
	Nodes   int
	Cutoffs int
}

// BestMove returns the optimal move for toMove and its value.
// The board is mutated while searching and restored before returning.
// It returns NoMove when the board is full; callers are expected to check that first.
func BestMove(board *entity.Board, toMove entity.Player) (int, entity.Score) {
	result := Search(board, toMove)
	return result.Move, result.Score
}

// Search is BestMove with search statistics.
func Search(board *entity.Board, toMove entity.Player) Result {
	mustBeValid(toMove)

	return newSearcher(board).root(toMove)
}

// SearchParallel splits the root candidates across at most workers goroutines.
// Every worker searches a private copy of the board with a full window, so the
// chosen move and value are the same as Search. Cancelling ctx stops workers
// that have not started yet.
func SearchParallel(ctx context.Context, board entity.Board, toMove entity.Player, workers int) (Result, error) {
	mustBeValid(toMove)

	cells := board.EmptyCells()
	if len(cells) == 0 {
		return Result{Move: NoMove, Score: entity.Draw}, nil
	}

	children := make([]Result, len(cells))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, cell := range cells {
		i, cell := i, cell
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			local := board
			s := newSearcher(&local)
			score := s.try(cell, toMove, minScore, maxScore)

			children[i] = Result{Move: cell, Score: score, Nodes: s.nodes, Cutoffs: s.cutoffs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("parallel search: %w", err)
	}

	result := Result{Move: NoMove, Score: worst(toMove), Nodes: 1}
	for _, child := range children {
		result.Nodes += child.Nodes
		result.Cutoffs += child.Cutoffs

		if improves(toMove, child.Score, result.Score) {
			result.Move = child.Move
			result.Score = child.Score
		}
	}

	return result, nil
}

type searcher struct {
	board *entity.Board

	nodes   int
	cutoffs int

	// restored, when set, is called after every undo with the board as it was before the mark was placed.
	restored func(cell int, before, after entity.Board)
}

func newSearcher(board *entity.Board) *searcher {
	return &searcher{board: board}
}

func (s *searcher) root(toMove entity.Player) Result {
	s.nodes++

	result := Result{Move: NoMove, Score: entity.Draw}
	best := worst(toMove)
	alpha, beta := minScore, maxScore

	for cell := range s.board {
		if s.board[cell] != entity.Empty {
			continue
		}

		score := s.try(cell, toMove, alpha, beta)
		if improves(toMove, score, best) {
			best = score
			result.Move = cell
		}

		if toMove == entity.Maximizer {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
	}

	if result.Move != NoMove {
		result.Score = best
	}
	result.Nodes = s.nodes
	result.Cutoffs = s.cutoffs

	return result
}

// try places mover's mark on cell, searches the reply and always restores the cell.
func (s *searcher) try(cell int, mover entity.Player, alpha, beta entity.Score) entity.Score {
	var before entity.Board
	if s.restored != nil {
		before = *s.board
	}

	s.board[cell] = mover.Mark()
	defer func() {
		s.board[cell] = entity.Empty
		if s.restored != nil {
			s.restored(cell, before, *s.board)
		}
	}()

	return s.minimax(mover.Opponent(), alpha, beta)
}

func (s *searcher) minimax(toMove entity.Player, alpha, beta entity.Score) entity.Score {
	s.nodes++

	switch {
	case s.board.HasWon(entity.Maximizer):
		return entity.Win
	case s.board.HasWon(entity.Minimizer):
		return entity.Loss
	case s.board.IsFull():
		return entity.Draw
	}

	best := worst(toMove)
	for cell := range s.board {
		if s.board[cell] != entity.Empty {
			continue
		}

		score := s.try(cell, toMove, alpha, beta)
		if toMove == entity.Maximizer {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}

		if beta <= alpha {
			s.cutoffs++
			break
		}
	}

	return best
}

func worst(toMove entity.Player) entity.Score {
	if toMove == entity.Maximizer {
		return minScore
	}
	return maxScore
}

func improves(toMove entity.Player, score, best entity.Score) bool {
	if toMove == entity.Maximizer {
		return score > best
	}
	return score < best
}

func mustBeValid(toMove entity.Player) {
	if !toMove.Valid() {
		panic(fmt.Errorf("minimax: %w: %s", entity.ErrInvalidPlayer, toMove))
	}
}

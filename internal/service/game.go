package service

import (
	"fmt"

	"gomoku/internal/board"
	"gomoku/internal/core"
	"gomoku/internal/game"
	"gomoku/internal/storage"

	"github.com/google/uuid"
)

// CreateGame registers a new game with pre-constructed players
func (s *Service) CreateGame(id string, playerA, playerB *core.Player) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return View{}, fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	if len(s.games) >= MaxGames {
		return View{}, ErrResourceLimit
	}

	now := s.now()
	sess := &session{
		id:         id,
		history:    game.New(),
		playerA:    playerA,
		playerB:    playerB,
		result:     core.StateOngoing,
		createdAt:  now,
		lastActive: now,
	}
	s.games[id] = sess

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			PlayerAID:    playerA.ID,
			PlayerAName:  playerA.Name,
			PlayerBID:    playerB.ID,
			PlayerBName:  playerB.Name,
			BoardSize:    board.Size,
			WinLength:    board.WinLength,
			Result:       core.StateOngoing.String(),
			StartTimeUTC: now.UTC(),
		})
	}

	return sess.view(), nil
}

// GetGame returns a copy of the game state
func (s *Service) GetGame(gameID string) (View, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// PlayMove plays index for the side to move at the viewed position
func (s *Service) PlayMove(gameID string, index int) (View, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	h := sess.history
	branchFrom := h.Position()
	truncated := branchFrom < h.MoveCount()

	if err := h.PlayMove(index); err != nil {
		return View{}, err
	}

	if s.store != nil {
		if truncated {
			s.store.DeleteMovesAfter(gameID, branchFrom)
		}
		current := h.Current()
		s.store.RecordMove(storage.MoveRecord{
			GameID:         gameID,
			MoveNumber:     h.Position(),
			CellIndex:      current.Move,
			PlayerMark:     current.Mark.String(),
			BoardAfterMove: current.Board.String(),
			MoveTimeUTC:    s.now().UTC(),
		})
	}
	s.recordResult(sess)

	return s.touch(sess), nil
}

// JumpTo moves the viewed position of a game
func (s *Service) JumpTo(gameID string, position int) (View, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.history.JumpTo(position); err != nil {
		return View{}, err
	}

	return s.touch(sess), nil
}

// Restart clears the history of a game, keeping its players
func (s *Service) Restart(gameID string) (View, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = game.New()

	if s.store != nil {
		s.store.DeleteMovesAfter(gameID, 0)
	}
	s.recordResult(sess)

	return s.touch(sess), nil
}

// DeleteGame removes a game from memory; recorded moves stay in storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	sess.mu.Lock()
	sess.removed = true
	sess.mu.Unlock()

	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

func (s *Service) lookup(gameID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess, nil
}

// touch bumps the version, wakes waiters and returns the new view; mu held
func (s *Service) touch(sess *session) View {
	sess.version++
	sess.lastActive = s.now()
	s.waiter.NotifyGame(sess.id, sess.version)
	return sess.view()
}

// recordResult writes the result of the recorded line when it changed; mu held
func (s *Service) recordResult(sess *session) {
	final := sess.history.FinalState()
	if final == sess.result {
		return
	}
	sess.result = final
	if s.store != nil {
		s.store.UpdateGameResult(sess.id, final.String())
	}
}

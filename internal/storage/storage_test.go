package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path, false)
	require.NoError(t, err)
	require.NoError(t, s.InitDB())
	return s
}

func TestRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomoku.db")
	s := openStore(t, path)

	now := time.Now().UTC().Truncate(time.Second)
	s.RecordNewGame(GameRecord{
		GameID:       "game-1",
		PlayerAID:    "pa",
		PlayerAName:  "Alice",
		PlayerBID:    "pb",
		PlayerBName:  "Bob",
		BoardSize:    15,
		WinLength:    5,
		StartTimeUTC: now,
	})
	for i, cell := range []int{112, 113, 127} {
		mark := "A"
		if i%2 == 1 {
			mark = "B"
		}
		s.RecordMove(MoveRecord{
			GameID:         "game-1",
			MoveNumber:     i + 1,
			CellIndex:      cell,
			PlayerMark:     mark,
			BoardAfterMove: "board",
			MoveTimeUTC:    now,
		})
	}
	s.DeleteMovesAfter("game-1", 2)
	s.UpdateGameResult("game-1", "a_wins")

	// Close drains the queue
	require.NoError(t, s.Close())
	assert.True(t, s.IsHealthy())

	s = openStore(t, path)
	defer s.Close()

	games, err := s.QueryGames("", "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "game-1", games[0].GameID)
	assert.Equal(t, "Alice", games[0].PlayerAName)
	assert.Equal(t, "a_wins", games[0].Result)
	assert.Equal(t, 15, games[0].BoardSize)

	games, err = s.QueryGames("*", "pb")
	require.NoError(t, err)
	assert.Len(t, games, 1)

	games, err = s.QueryGames("", "nobody")
	require.NoError(t, err)
	assert.Empty(t, games)

	moves, err := s.QueryMoves("game-1")
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, 112, moves[0].CellIndex)
	assert.Equal(t, "A", moves[0].PlayerMark)
	assert.Equal(t, 113, moves[1].CellIndex)
	assert.Equal(t, "B", moves[1].PlayerMark)
}

func TestWriteFailureDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomoku.db")
	s := openStore(t, path)

	// foreign key violation: no such game
	s.RecordMove(MoveRecord{
		GameID:         "missing",
		MoveNumber:     1,
		CellIndex:      0,
		PlayerMark:     "A",
		BoardAfterMove: "board",
		MoveTimeUTC:    time.Now().UTC(),
	})
	require.NoError(t, s.Close())
	assert.False(t, s.IsHealthy())
}

func TestFullQueueDegrades(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "gomoku.db"))

	// park the writer inside a transaction so nothing drains the queue
	release := make(chan struct{})
	s.enqueue("blocker", func(*sql.Tx) error {
		<-release
		return nil
	})
	for i := 0; i <= writeQueueSize; i++ {
		s.enqueue("noop", func(*sql.Tx) error { return nil })
	}
	assert.False(t, s.IsHealthy())

	close(release)
	require.NoError(t, s.Close())
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomoku.db")
	s := openStore(t, path)

	require.NoError(t, s.DeleteDB())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// second close is a no-op
	assert.NoError(t, s.Close())
}

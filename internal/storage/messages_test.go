package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func chatMessage(room domain.RoomID, sender, body string, at time.Time) domain.ChatMessage {
	return domain.ChatMessage{
		ID:     fmt.Sprintf("%s-%d", body, at.UnixNano()),
		Room:   room,
		Sender: sender,
		Body:   body,
		At:     at,
	}
}

func Test_Messages_Roundtrip_Chronological(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		msg := chatMessage("consult", "Alice", fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Second))
		req.NoError(repo.SaveMessage(ctx, msg))
	}

	got, err := repo.RecentMessages(ctx, "consult", 50)
	req.NoError(err)
	req.Len(got, 3)
	for i, msg := range got {
		req.Equal(fmt.Sprintf("msg %d", i), msg.Body)
		req.Equal("Alice", msg.Sender)
	}
}

func Test_Messages_Keep_Their_Ids(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	saved := domain.ChatMessage{ID: "msg-42", Room: "consult", Sender: "Alice", Body: "hello", At: time.Now().UTC()}
	req.NoError(repo.SaveMessage(ctx, saved))

	got, err := repo.RecentMessages(ctx, "consult", 50)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("msg-42", got[0].ID)
	req.True(got[0].At.Equal(saved.At))
}

func Test_Messages_Limit_Keeps_Newest(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		msg := chatMessage("consult", "Alice", fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Second))
		req.NoError(repo.SaveMessage(ctx, msg))
	}

	got, err := repo.RecentMessages(ctx, "consult", 2)
	req.NoError(err)
	req.Len(got, 2)
	req.Equal("msg 3", got[0].Body)
	req.Equal("msg 4", got[1].Body)
}

func Test_Messages_Rooms_Are_Isolated(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	req.NoError(repo.SaveMessage(ctx, chatMessage("room-a", "Alice", "for a", now)))
	req.NoError(repo.SaveMessage(ctx, chatMessage("room-b", "Bob", "for b", now)))

	got, err := repo.RecentMessages(ctx, "room-a", 50)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("for a", got[0].Body)

	count, err := repo.CountMessages(ctx)
	req.NoError(err)
	req.Equal(2, count)
}

func Test_Messages_Room_Ids_With_Colons_Stay_Isolated(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	req.NoError(repo.SaveMessage(ctx, chatMessage("general", "Alice", "public", now)))
	req.NoError(repo.SaveMessage(ctx, chatMessage("general:0secret", "Bob", "private", now)))

	got, err := repo.RecentMessages(ctx, "general", 50)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("public", got[0].Body)

	got, err = repo.RecentMessages(ctx, "general:0secret", 50)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("private", got[0].Body)
}

func Test_Messages_Empty_Room(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(openTestDB(t))

	got, err := repo.RecentMessages(context.Background(), "nobody-home", 50)
	req.NoError(err)
	req.Empty(got)
}

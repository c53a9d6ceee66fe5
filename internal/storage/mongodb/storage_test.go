package mongodb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
	"github.com/monoare/vigor-vista-server/internal/testutil/mongotest"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	uri := mongotest.URI(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := New(ctx, uri, mongotest.Database(), 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Database().Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestStorage_Users(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	_, err := s.FindUserByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	res, err := s.InsertUser(ctx, models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotNil(t, res.InsertedID)

	u, err := s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	upd, err := s.UpdateUserProfile(ctx, "a@x.com", models.UserProfileUpdate{Name: "Alice", PhotoURL: "https://img/a.png"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)

	upd, err = s.SetUserStatus(ctx, "new@x.com", models.StatusTrainer)
	require.NoError(t, err)
	assert.EqualValues(t, 0, upd.MatchedCount)
	assert.EqualValues(t, 1, upd.UpsertedCount)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestStorage_GetByMalformedID(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	_, err := s.GetTrainer(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, apperr.ErrInvalidID)

	_, err = s.GetClass(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStorage_ForumPagination(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	posts, err := s.ListPosts(ctx, 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	for i := 0; i < 5; i++ {
		_, err := s.InsertPost(ctx, models.ForumPost{Title: "t", Description: "d", AuthorEmail: "a@x.com"})
		require.NoError(t, err)
	}

	posts, err = s.ListPosts(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	n, err := s.CountPosts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestStorage_Vote(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	res, err := s.InsertPost(ctx, models.ForumPost{Title: "t", Description: "d"})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID).Hex()

	post, err := s.UpVote(ctx, id, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, post.UpVote)
	assert.Equal(t, []string{"a@x.com"}, post.UpVotedBy)

	_, err = s.UpVote(ctx, id, "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrDuplicateVote)

	post, err = s.DownVote(ctx, id, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, -1, post.DownVote)
	assert.Equal(t, 1, post.UpVote)

	post, err = s.DownVote(ctx, id, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, -2, post.DownVote)

	_, err = s.UpVote(ctx, primitive.NewObjectID().Hex(), "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStorage_ConcurrentUpVoteCountsOnce(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	res, err := s.InsertPost(ctx, models.ForumPost{Title: "t", Description: "d"})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID).Hex()

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.UpVote(ctx, id, "race@x.com"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	var post models.ForumPost
	require.NoError(t, s.coll(CollForum).FindOne(ctx, map[string]any{"_id": res.InsertedID}).Decode(&post))
	assert.Equal(t, 1, post.UpVote)
	assert.Len(t, post.UpVotedBy, 1)
}

func TestStorage_ApproveApplication(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	// коллекции должны существовать до транзакции
	for _, c := range []string{CollTrainers, CollUsers} {
		require.NoError(t, s.Database().CreateCollection(ctx, c))
	}

	res, err := s.InsertApplication(ctx, models.TrainerApplication{
		TrainerFields: models.TrainerFields{Name: "Sam", Email: "sam@x.com", Age: 30, Skills: []string{"yoga"}},
		Status:        models.ApplicationPending,
	})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID).Hex()

	profile, err := s.ApproveApplication(ctx, id)
	require.NoError(t, err)
	assert.False(t, profile.ID.IsZero())
	assert.Equal(t, models.ApplicationApproved, profile.Status)
	assert.Equal(t, "sam@x.com", profile.Email)

	_, err = s.GetApplication(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := s.GetTrainer(ctx, profile.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"yoga"}, got.Skills)

	u, err := s.FindUserByEmail(ctx, "sam@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTrainer, u.Status)

	_, err = s.ApproveApplication(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStorage_TrainerPaymentUpsert(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()
	res, err := s.UpdateTrainerPayment(ctx, id, models.TrainerPayment{Status: "paid", Price: 25})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.UpsertedCount)

	got, err := s.GetTrainer(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "paid", got.Payment.Status)
	assert.Equal(t, 25.0, got.Payment.Price)
}

func TestStorage_PaymentsAndMembers(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	_, err := s.InsertPayment(ctx, models.Payment{Email: "a@x.com", Price: 10, TransactionID: "pi_1"})
	require.NoError(t, err)
	_, err = s.InsertPayment(ctx, models.Payment{Email: "b@x.com", Price: 20, TransactionID: "pi_2"})
	require.NoError(t, err)

	all, err := s.ListPayments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := s.ListPayments(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "pi_1", mine[0].TransactionID)

	_, err = s.FindPaidMember(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.InsertPaidMember(ctx, models.PaidMember{Email: "a@x.com"})
	require.NoError(t, err)
	m, err := s.FindPaidMember(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", m.Email)
}

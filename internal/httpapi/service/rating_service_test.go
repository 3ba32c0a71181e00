package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

func TestRateCartoonComputesMean(t *testing.T) {
	db := newTestDB(t)
	ratingRepo := repository.NewRatingRepository(db)
	cartoonRepo := repository.NewCartoonRepository(db)
	svc := NewRatingService(db, ratingRepo, cartoonRepo)

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user1 := seedUser(t, db, "one@example.com", models.RoleUser)
	user2 := seedUser(t, db, "two@example.com", models.RoleUser)

	_, err := svc.RateCartoon(context.Background(), actorFor(user1), cartoon.ID, 4)
	require.NoError(t, err)
	_, err = svc.RateCartoon(context.Background(), actorFor(user2), cartoon.ID, 2)
	require.NoError(t, err)

	got, err := cartoonRepo.FindByID(cartoon.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Ratings, 0.001)
}

func TestRateCartoonUpsertsOwnRating(t *testing.T) {
	db := newTestDB(t)
	ratingRepo := repository.NewRatingRepository(db)
	cartoonRepo := repository.NewCartoonRepository(db)
	svc := NewRatingService(db, ratingRepo, cartoonRepo)

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	first, err := svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 5)
	require.NoError(t, err)
	second, err := svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 1)
	require.NoError(t, err)

	// Same row updated, not a second row.
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.CartoonRating{}).Where("cartoon_id = ?", cartoon.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := cartoonRepo.FindByID(cartoon.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Ratings, 0.001)
}

func TestRateCartoonRejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, repository.NewRatingRepository(db), repository.NewCartoonRepository(db))
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	_, err := svc.RateCartoon(context.Background(), actorFor(user), "whatever", 5.5)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = svc.RateCartoon(context.Background(), actorFor(user), "whatever", -1)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestRateCartoonUnknownCartoon(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, repository.NewRatingRepository(db), repository.NewCartoonRepository(db))
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	_, err := svc.RateCartoon(context.Background(), actorFor(user), "missing-id", 3)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteRatingRecomputesMean(t *testing.T) {
	db := newTestDB(t)
	ratingRepo := repository.NewRatingRepository(db)
	cartoonRepo := repository.NewCartoonRepository(db)
	svc := NewRatingService(db, ratingRepo, cartoonRepo)

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user1 := seedUser(t, db, "one@example.com", models.RoleUser)
	user2 := seedUser(t, db, "two@example.com", models.RoleUser)

	rating1, err := svc.RateCartoon(context.Background(), actorFor(user1), cartoon.ID, 4)
	require.NoError(t, err)
	_, err = svc.RateCartoon(context.Background(), actorFor(user2), cartoon.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRating(context.Background(), actorFor(user1), rating1.ID))

	got, err := cartoonRepo.FindByID(cartoon.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Ratings, 0.001)
}

func TestDeleteLastRatingResetsMeanToZero(t *testing.T) {
	db := newTestDB(t)
	ratingRepo := repository.NewRatingRepository(db)
	cartoonRepo := repository.NewCartoonRepository(db)
	svc := NewRatingService(db, ratingRepo, cartoonRepo)

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	rating, err := svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 4)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRating(context.Background(), actorFor(user), rating.ID))

	got, err := cartoonRepo.FindByID(cartoon.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Ratings)
}

func TestDeleteRatingOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, repository.NewRatingRepository(db), repository.NewCartoonRepository(db))

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)

	rating, err := svc.RateCartoon(context.Background(), actorFor(owner), cartoon.ID, 4)
	require.NoError(t, err)

	err = svc.DeleteRating(context.Background(), actorFor(other), rating.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestRateAgainAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, repository.NewRatingRepository(db), repository.NewCartoonRepository(db))

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	rating, err := svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 4)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRating(context.Background(), actorFor(user), rating.ID))

	// The tombstone must not block a fresh rating.
	_, err = svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 3)
	require.NoError(t, err)
}

func TestMyRatingAndListByCartoon(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, repository.NewRatingRepository(db), repository.NewCartoonRepository(db))

	company := seedCompany(t, db, "studio@example.com")
	chain := seedChain(t, db, company.ID)
	cartoon := seedCartoon(t, db, chain.ID)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	_, err := svc.MyRating(context.Background(), actorFor(user), cartoon.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.RateCartoon(context.Background(), actorFor(user), cartoon.ID, 4)
	require.NoError(t, err)

	mine, err := svc.MyRating(context.Background(), actorFor(user), cartoon.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, mine.Rating, 0.001)

	page, err := svc.FindByCartoonPaginated(context.Background(), cartoon.ID, dto.PaginationQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Len(t, page.Data, 1)
}

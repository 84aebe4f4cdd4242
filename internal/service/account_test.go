package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/mocks"
	"github.com/chatloop/chat-api/internal/testutil"
)

const (
	testClerkID   = "clerk-user-1"
	testAccountID = "acct-1"
)

func testIdentity() domainauth.Identity {
	return domainauth.Identity{ClerkID: testClerkID}
}

func testAccount(accountID, clerkID string) *model.Account {
	return &model.Account{
		AccountID: accountID,
		ClerkID:   testutil.StringPtr(clerkID),
		Username:  testutil.StringPtr("user-" + accountID),
		Created:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccountService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	req := &model.CreateAccountRequest{Username: testutil.StringPtr("alice")}
	expected := testAccount(testAccountID, testClerkID)

	mockRepo.EXPECT().
		Create(ctx, testClerkID, req).
		Return(expected, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), req)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAccountService_Create_MissingIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	got, err := svc.Create(context.Background(), domainauth.Identity{}, &model.CreateAccountRequest{})
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindCredentialMissing, domainauth.KindOf(err))
}

func TestAccountService_ListOwned_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	expected := []*model.Account{testAccount("acct-1", testClerkID), testAccount("acct-2", testClerkID)}

	mockRepo.EXPECT().
		ListByClerkID(ctx, testClerkID).
		Return(expected, nil).
		Times(1)

	got, err := svc.ListOwned(ctx, testIdentity())
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAccountService_GetOwned_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	expected := testAccount(testAccountID, testClerkID)

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(expected, nil).
		Times(1)

	got, err := svc.GetOwned(ctx, testIdentity(), testAccountID)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAccountService_GetOwned_ForeignAccountReportedNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	foreign := testAccount(testAccountID, "clerk-user-2")

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(foreign, nil).
		Times(1)

	got, err := svc.GetOwned(ctx, testIdentity(), testAccountID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, data.ErrAccountNotFound)
}

func TestAccountService_UpdateOwned_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	req := model.UpdateAccountRequest{Username: testutil.StringPtr("renamed")}
	owned := testAccount(testAccountID, testClerkID)
	updated := testAccount(testAccountID, testClerkID)
	updated.Username = testutil.StringPtr("renamed")

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(owned, nil).
		Times(1)
	mockRepo.EXPECT().
		Update(ctx, testAccountID, req).
		Return(updated, nil).
		Times(1)

	got, err := svc.UpdateOwned(ctx, testIdentity(), testAccountID, req)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestAccountService_UpdateOwned_ForeignAccountRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	foreign := testAccount(testAccountID, "clerk-user-2")

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(foreign, nil).
		Times(1)

	got, err := svc.UpdateOwned(ctx, testIdentity(), testAccountID, model.UpdateAccountRequest{
		Username: testutil.StringPtr("hijack"),
	})
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}

func TestAccountService_UpdateOwned_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	repoErr := errors.New("database connection failed")

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(nil, repoErr).
		Times(1)

	got, err := svc.UpdateOwned(ctx, testIdentity(), testAccountID, model.UpdateAccountRequest{
		Username: testutil.StringPtr("renamed"),
	})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repoErr)
}

func TestAccountService_ListDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	expected := []*model.Account{testAccount("acct-1", "clerk-a"), testAccount("acct-2", "clerk-b")}

	mockRepo.EXPECT().
		List(ctx, 25, 50).
		Return(expected, nil).
		Times(1)

	got, err := svc.ListDirectory(ctx, 25, 50)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAccountService_GetDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{AccountRepo: mockRepo})

	ctx := context.Background()
	expected := testAccount(testAccountID, "clerk-other")

	mockRepo.EXPECT().
		GetByID(ctx, testAccountID).
		Return(expected, nil).
		Times(1)

	got, err := svc.GetDirectory(ctx, testAccountID)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

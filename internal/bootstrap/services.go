package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/chatloop/chat-api/internal/data"
	"github.com/chatloop/chat-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Accounts   *service.AccountService
	UserChats  *service.UserChatService
	GroupChats *service.GroupChatService
	Messages   *service.MessageService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	DB     *sql.DB
	Auth   *service.AuthService
	Logger *slog.Logger
}

// BuildServices wires repositories into the domain services.
func BuildServices(deps ServiceDeps) ServiceContainer {
	accountRepo := data.NewAccountRepo(deps.DB)
	userChatRepo := data.NewUserChatRepo(deps.DB)
	groupChatRepo := data.NewGroupChatRepo(deps.DB)
	messageRepo := data.NewMessageRepo(deps.DB)

	return ServiceContainer{
		Auth: deps.Auth,
		Accounts: service.NewAccountService(service.AccountServiceOptions{
			AccountRepo: accountRepo,
		}),
		UserChats: service.NewUserChatService(service.UserChatServiceOptions{
			ChatRepo:    userChatRepo,
			AccountRepo: accountRepo,
		}),
		GroupChats: service.NewGroupChatService(service.GroupChatServiceOptions{
			GroupRepo:   groupChatRepo,
			AccountRepo: accountRepo,
		}),
		Messages: service.NewMessageService(service.MessageServiceOptions{
			MessageRepo: messageRepo,
			ChatRepo:    userChatRepo,
			GroupRepo:   groupChatRepo,
			AccountRepo: accountRepo,
		}),
	}
}

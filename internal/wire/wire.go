package wire

import (
	"SkillNest/internal/api"
	"SkillNest/internal/api/handler"
	"SkillNest/internal/repository"
	"SkillNest/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *mongo.Database
}

func BuildApplication(db *mongo.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewSkillPostRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	notificationService := service.NewNotificationService(notificationRepo)
	userService := service.NewUserService(userRepo)
	postService := service.NewSkillPostService(postRepo)
	actionService := service.NewPostActionService(postRepo, notificationService)
	socialService := service.NewSocialService(userRepo, notificationService)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		SkillPostHandler:    handler.NewSkillPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(actionService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		SocialHandler:       handler.NewSocialHandler(socialService),
		WSHandler:           handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
	}, nil
}

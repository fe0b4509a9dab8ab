package internal

import (
	"net/http"

	"codefolio/internal/controllers"
	"codefolio/internal/providers"
)

func InitRoutes(contestController *controllers.ContestController, profileController *controllers.ProfileController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/contests/{class}", http.HandlerFunc(contestController.ListContests))
	routers.Post("/contests/cache/clear", http.HandlerFunc(contestController.ClearCache))

	routers.Post("/profiles", http.HandlerFunc(profileController.CreateProfile))
	routers.Get("/profiles/{userId}", http.HandlerFunc(profileController.GetProfile))
	routers.Put("/profiles/{userId}", http.HandlerFunc(profileController.UpdateProfile))
	routers.Delete("/profiles/{userId}", http.HandlerFunc(profileController.DeleteProfile))
	routers.Put("/profiles/{userId}/{platform}", http.HandlerFunc(profileController.LinkPlatform))
	routers.Get("/profiles/{userId}/{platform}/stats", http.HandlerFunc(profileController.GetPlatformStats))
	return routers
}

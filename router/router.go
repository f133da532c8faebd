package router

import (
	"net/http"
	"time"

	"tuiter/auth"
	"tuiter/controllers"
	"tuiter/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Users     *controllers.UserController
	Auth      *controllers.AuthController
	Tuits     *controllers.TuitController
	Likes     *controllers.LikeController
	Dislikes  *controllers.DislikeController
	Bookmarks *controllers.BookmarkController
	Follows   *controllers.FollowController
	Messages  *controllers.MessageController
}

const defaultCorsOrigin = "http://localhost:3000"

type Options struct {
	CorsOrigin string
	JwtSecret  string
	Sessions   auth.SessionStore
}

func SetupRouter(opts Options, c Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	origin := opts.CorsOrigin
	if origin == "" {
		origin = defaultCorsOrigin
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Session(opts.Sessions, opts.JwtSecret))

	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Welcome!")
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", c.Auth.Signup)
		authGroup.POST("/login", c.Auth.Login)
		authGroup.POST("/profile", c.Auth.Profile)
		authGroup.POST("/logout", c.Auth.Logout)

		api.GET("/users", c.Users.FindAllUsers)
		api.POST("/users", c.Users.CreateUser)
		api.GET("/users/:uid", c.Users.FindUserById)
		api.PUT("/users/:uid", c.Users.UpdateUser)
		api.DELETE("/users/:uid", c.Users.DeleteUser)

		api.GET("/tuits", c.Tuits.FindAllTuits)
		api.GET("/tuits/search", c.Tuits.SearchTuits)
		api.GET("/tuits/top", c.Likes.GetTopTuits)
		api.GET("/tuits/:tid", c.Tuits.FindTuitById)
		api.PUT("/tuits/:tid", c.Tuits.UpdateTuit)
		api.DELETE("/tuits/:tid", c.Tuits.DeleteTuit)
		api.GET("/users/:uid/tuits", c.Tuits.FindAllTuitsByUser)
		api.POST("/users/:uid/tuits", c.Tuits.CreateTuitByUser)

		api.GET("/users/:uid/likes", c.Likes.FindTuitsByUser)
		api.GET("/tuits/:tid/likes", c.Likes.FindUsersByTuit)
		api.GET("/tuits/:tid/likes/count", c.Likes.Count)
		api.PUT("/users/:uid/likes/:tid", c.Likes.Toggle)
		api.GET("/users/:uid/likes/:tid", c.Likes.Check)

		api.GET("/users/:uid/dislikes", c.Dislikes.FindTuitsByUser)
		api.GET("/tuits/:tid/dislikes", c.Dislikes.FindUsersByTuit)
		api.GET("/tuits/:tid/dislikes/count", c.Dislikes.Count)
		api.PUT("/users/:uid/dislikes/:tid", c.Dislikes.Toggle)
		api.GET("/users/:uid/dislikes/:tid", c.Dislikes.Check)

		api.GET("/users/:uid/bookmarks", c.Bookmarks.FindAllTuitsBookmarkedByUser)
		api.GET("/tuits/:tid/bookmarks", c.Bookmarks.FindAllUsersThatBookmarkedTuit)
		api.GET("/users/:uid/bookmarks/:tid", c.Bookmarks.FindUserBookmarksTuit)
		api.POST("/users/:uid/bookmarks/:tid", c.Bookmarks.UserBookmarksTuit)
		api.DELETE("/users/:uid/unbookmarks/:tid", c.Bookmarks.UserUnbookmarksTuit)

		api.GET("/users/:uid/following-user", c.Follows.FindAllFollowingUser)
		api.GET("/users/:uid/followed-user", c.Follows.FindAllFollowedUser)
		api.POST("/users/:uid/following/:auid", c.Follows.UserFollowsAnotherUser)
		api.DELETE("/users/:uid/unfollows/:auid", c.Follows.UserUnfollowsAnotherUser)
		api.DELETE("/users/:uid/remove-all-follower", c.Follows.UserRemoveAllFollower)
		api.DELETE("/users/:uid/remove-all-following", c.Follows.UserRemoveAllFollowing)

		api.GET("/messages", c.Messages.FindAllMessages)
		api.GET("/messages/:mid", c.Messages.FindMessageById)
		api.PUT("/messages/:mid", c.Messages.UpdateMessage)
		api.DELETE("/messages/:mid", c.Messages.DeleteMessage)
		api.GET("/users/:uid/messages", c.Messages.FindMessagesSent)
		api.GET("/users/:uid/messages/sent", c.Messages.FindMessagesSent)
		api.GET("/users/:uid/messages/received", c.Messages.FindMessagesReceived)
		api.POST("/users/:uid/messages", c.Messages.CreateMessageByUser)
		api.POST("/users/:uid/messages/:auid", c.Messages.UserSendsMessage)
		api.DELETE("/users/:uid/messages/sent", c.Messages.DeleteAllSent)
		api.DELETE("/users/:uid/messages/received", c.Messages.DeleteAllReceived)
	}

	return r
}

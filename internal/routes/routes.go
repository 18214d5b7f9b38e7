package routes

import (
	"finance-backend/internal/config"
	"finance-backend/internal/handlers"
	"finance-backend/internal/middleware"
	"finance-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(60))

	authService := services.NewAuthService(db)
	accountService := services.NewAccountService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	cardService := services.NewCardService(db)
	tagService := services.NewTagService(db)
	tagRuleService := services.NewTagRuleService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	accountHandler := handlers.NewAccountHandler(accountService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	cardHandler := handlers.NewCardHandler(cardService)
	tagHandler := handlers.NewTagHandler(tagService)
	tagRuleHandler := handlers.NewTagRuleHandler(tagRuleService)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.GET("", accountHandler.GetAccounts)
			accounts.POST("", accountHandler.CreateAccount)
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.PUT("/:id", accountHandler.UpdateAccount)
			accounts.DELETE("/:id", accountHandler.DeleteAccount)
			accounts.GET("/:id/children", accountHandler.GetChildren)
			accounts.GET("/:id/balance", accountHandler.GetBalance)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", expenseHandler.GetExpenses)
			expenses.POST("", expenseHandler.CreateExpense)
			expenses.GET("/summary", expenseHandler.GetSummary)
			expenses.GET("/:id", expenseHandler.GetExpense)
			expenses.PUT("/:id", expenseHandler.UpdateExpense)
			expenses.DELETE("/:id", expenseHandler.DeleteExpense)
		}

		incomes := protected.Group("/incomes")
		{
			incomes.GET("", incomeHandler.GetIncomes)
			incomes.POST("", incomeHandler.CreateIncome)
			incomes.GET("/summary", incomeHandler.GetSummary)
			incomes.GET("/:id", incomeHandler.GetIncome)
			incomes.PUT("/:id", incomeHandler.UpdateIncome)
			incomes.DELETE("/:id", incomeHandler.DeleteIncome)
		}

		cards := protected.Group("/cards")
		{
			cards.GET("", cardHandler.GetCards)
			cards.POST("", cardHandler.CreateCard)
			cards.GET("/:id", cardHandler.GetCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
			cards.GET("/:id/statements", cardHandler.GetStatements)
			cards.POST("/:id/statements", cardHandler.CreateStatement)
		}

		statements := protected.Group("/statements")
		{
			statements.POST("/:id/transactions", cardHandler.CreateTransaction)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", cardHandler.GetTransactions)
			transactions.GET("/:id", cardHandler.GetTransaction)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		rules := protected.Group("/tag-rules")
		{
			rules.GET("", tagRuleHandler.ListRules)
			rules.POST("", tagRuleHandler.CreateRule)
			rules.POST("/apply", tagRuleHandler.Apply)
			rules.POST("/apply-to-transaction", tagRuleHandler.ApplyToTransaction)
			rules.GET("/:id", tagRuleHandler.GetRule)
			rules.PUT("/:id", tagRuleHandler.UpdateRule)
			rules.DELETE("/:id", tagRuleHandler.DeleteRule)
		}
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db, cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", authHandler.ListUsers)
		admin.GET("/users/:id", authHandler.GetUser)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "service is running",
		})
	})

	return router
}

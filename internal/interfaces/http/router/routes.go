package router

import (
	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/garagehub/backend/internal/interfaces/http/handler"
	"github.com/garagehub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the handlers the API exposes
type Handlers struct {
	System          *handler.SystemHandler
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	Role            *handler.RoleHandler
	Page            *handler.PageHandler
	Permission      *handler.PermissionHandler
	ExpenseCategory *handler.ExpenseCategoryHandler
	Expense         *handler.ExpenseHandler
	Income          *handler.IncomeHandler
	Product         *handler.ProductHandler
	Warehouse       *handler.WarehouseHandler
	Stock           *handler.StockHandler
	Customer        *handler.CustomerHandler
	Vehicle         *handler.VehicleHandler
	Warranty        *handler.WarrantyHandler
}

// Registrars builds the route groups for the whole API.
//
// System endpoints are open. Auth endpoints resolve the tenant so login hits
// the right database; register, login and refresh are otherwise public while
// logout, change-password and me require a valid token. Every resource group
// runs tenant resolution, JWT authentication and a permission check keyed by
// the group's route prefix, with the action derived from the HTTP method.
func Registrars(h Handlers, authService *appidentity.AuthService, permissionService *appidentity.PermissionService) []RouteRegistrar {
	tenant := middleware.TenantResolver()
	jwt := middleware.JWTAuth(authService)
	perm := func(pagePath string) gin.HandlerFunc {
		return middleware.RequirePermission(permissionService, pagePath)
	}

	system := NewDomainGroup("/system")
	system.GET("/ping", h.System.Ping)
	system.GET("/info", h.System.Info)

	auth := NewDomainGroup("/auth").Use(tenant)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", jwt, h.Auth.Logout)
	auth.POST("/change-password", jwt, h.Auth.ChangePassword)
	auth.GET("/me", jwt, h.Auth.Me)

	users := NewDomainGroup("/users").Use(tenant, jwt, perm("/users"))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	roles := NewDomainGroup("/roles").Use(tenant, jwt, perm("/roles"))
	roles.POST("", h.Role.Create)
	roles.GET("", h.Role.List)
	roles.GET("/:id", h.Role.Get)
	roles.PUT("/:id", h.Role.Update)
	roles.PUT("/:id/permissions", h.Role.UpdatePermissions)
	roles.DELETE("/:id", h.Role.Delete)

	pages := NewDomainGroup("/pages").Use(tenant, jwt, perm("/pages"))
	pages.POST("", h.Page.Create)
	pages.GET("", h.Page.List)
	pages.GET("/:id", h.Page.Get)
	pages.PUT("/:id", h.Page.Update)
	pages.DELETE("/:id", h.Page.Delete)

	// Check is deliberately outside the permission guard: any authenticated
	// user may ask what they are allowed to do.
	permCheck := NewDomainGroup("/permissions").Use(tenant, jwt)
	permCheck.POST("/check", h.Permission.Check)

	permissions := NewDomainGroup("/permissions").Use(tenant, jwt, perm("/permissions"))
	permissions.POST("", h.Permission.Grant)
	permissions.GET("", h.Permission.List)
	permissions.GET("/:id", h.Permission.Get)
	permissions.DELETE("/:id", h.Permission.Delete)

	expenseCategories := NewDomainGroup("/expense-categories").Use(tenant, jwt, perm("/expense-categories"))
	expenseCategories.POST("", h.ExpenseCategory.Create)
	expenseCategories.GET("", h.ExpenseCategory.List)
	expenseCategories.GET("/:id", h.ExpenseCategory.Get)
	expenseCategories.PUT("/:id", h.ExpenseCategory.Update)
	expenseCategories.DELETE("/:id", h.ExpenseCategory.Delete)

	expenses := NewDomainGroup("/expenses").Use(tenant, jwt, perm("/expenses"))
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.GET("/:id", h.Expense.Get)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", h.Expense.Delete)

	incomes := NewDomainGroup("/incomes").Use(tenant, jwt, perm("/incomes"))
	incomes.POST("", h.Income.Create)
	incomes.GET("", h.Income.List)
	incomes.GET("/:id", h.Income.Get)
	incomes.PUT("/:id", h.Income.Update)
	incomes.DELETE("/:id", h.Income.Delete)

	products := NewDomainGroup("/products").Use(tenant, jwt, perm("/products"))
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Delete)

	warehouses := NewDomainGroup("/warehouses").Use(tenant, jwt, perm("/warehouses"))
	warehouses.POST("", h.Warehouse.Create)
	warehouses.GET("", h.Warehouse.List)
	warehouses.GET("/:id", h.Warehouse.Get)
	warehouses.PUT("/:id", h.Warehouse.Update)
	warehouses.DELETE("/:id", h.Warehouse.Delete)

	stock := NewDomainGroup("/stock").Use(tenant, jwt, perm("/stock"))
	stock.POST("/receive", h.Stock.Receive)
	stock.POST("/issue", h.Stock.Issue)
	stock.POST("/transfers", h.Stock.Transfer)
	stock.GET("/transfers", h.Stock.ListTransfers)
	stock.DELETE("/transfers/:id", h.Stock.DeleteTransfer)
	stock.GET("/transactions", h.Stock.ListTransactions)
	stock.GET("/levels/:id", h.Stock.Level)

	customers := NewDomainGroup("/customers").Use(tenant, jwt, perm("/customers"))
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)

	vehicles := NewDomainGroup("/vehicles").Use(tenant, jwt, perm("/vehicles"))
	vehicles.POST("", h.Vehicle.Create)
	vehicles.GET("", h.Vehicle.List)
	vehicles.GET("/:id", h.Vehicle.Get)
	vehicles.PUT("/:id", h.Vehicle.Update)
	vehicles.DELETE("/:id", h.Vehicle.Delete)

	warranties := NewDomainGroup("/warranties").Use(tenant, jwt, perm("/warranties"))
	warranties.POST("", h.Warranty.Create)
	warranties.GET("", h.Warranty.List)
	warranties.GET("/:id", h.Warranty.Get)
	warranties.PUT("/:id", h.Warranty.Update)
	warranties.DELETE("/:id", h.Warranty.Delete)

	return []RouteRegistrar{
		system, auth,
		users, roles, pages, permCheck, permissions,
		expenseCategories, expenses, incomes,
		products, warehouses, stock,
		customers, vehicles, warranties,
	}
}

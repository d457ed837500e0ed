package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storerate/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	owner, store := env.seedOwnerAndStore(t, "stats@example.com", "Stats Counting Fixture Store")
	review := &entity.DbReview{StoreID: store.ID, UserID: owner.ID, Rating: 5, Message: "great"}
	require.NoError(t, env.repo.CreateReview(context.Background(), review))

	w := env.do(t, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"users":1,"stores":1,"reviews":1}`, w.Body.String())
}

func TestAdminListUsersNestsStores(t *testing.T) {
	env := newTestEnv(t)
	owner, store := env.seedOwnerAndStore(t, "nested@example.com", "Nested Admin Listing Store")
	review := &entity.DbReview{StoreID: store.ID, UserID: owner.ID, Rating: 4, Message: "mine"}
	require.NoError(t, env.repo.CreateReview(context.Background(), review))

	w := env.do(t, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []entity.AdminUserItem
	decodeBody(t, w, &users)
	require.Len(t, users, 1)
	require.Len(t, users[0].Stores, 1)
	require.Equal(t, store.ID, users[0].Stores[0].ID)
	require.Equal(t, 4.0, users[0].Stores[0].AverageRating)
}

func TestAdminAddUser(t *testing.T) {
	env := newTestEnv(t)

	body := gin.H{
		"name":     "Administrator Created Person",
		"email":    "created@example.com",
		"password": "pw123456",
		"address":  "9 Admin Way",
		"role":     entity.UserRoleStoreOwner,
	}
	w := env.do(t, http.MethodPost, "/admin/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.JSONEq(t, `{"message":"User added successfully"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/admin/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Email already in use"}`, w.Body.String())

	body["email"] = "badrole@example.com"
	body["role"] = "superuser"
	w = env.do(t, http.MethodPost, "/admin/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Invalid role"}`, w.Body.String())
}

func TestAdminUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	identity := env.signup(t, "Password Preserving Subject", "keep@example.com", "keep-this-pw")

	w := env.do(t, http.MethodPut, "/admin/users/"+itoa(identity.ID), gin.H{
		"name":  "Renamed Password Preserving",
		"email": "keep@example.com",
		"role":  entity.UserRoleAdmin,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	login := env.do(t, http.MethodPost, "/user/login", gin.H{
		"email": "keep@example.com", "password": "keep-this-pw",
	})
	require.Equal(t, http.StatusOK, login.Code)

	var loggedIn entity.IdentityResponse
	decodeBody(t, login, &loggedIn)
	require.Equal(t, entity.UserRoleAdmin, loggedIn.Role)
}

func TestAdminUpdateUserEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Existing Email Holder Person", "held@example.com", "pw123456")
	other := env.signup(t, "Email Conflict Test Subject", "mover@example.com", "pw123456")

	w := env.do(t, http.MethodPut, "/admin/users/"+itoa(other.ID), gin.H{
		"name":  "Email Conflict Test Subject",
		"email": "held@example.com",
		"role":  entity.UserRoleUser,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Email already in use by another user"}`, w.Body.String())
}

func TestAdminDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	identity := env.signup(t, "Soon Deleted Account Holder", "gone@example.com", "pw123456")

	w := env.do(t, http.MethodDelete, "/admin/users/"+itoa(identity.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/admin/users/"+itoa(identity.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestAdminAddStore(t *testing.T) {
	env := newTestEnv(t)
	identity := env.signup(t, "Prospective Store Proprietor", "prop@example.com", "pw123456")

	w := env.do(t, http.MethodPost, "/admin/stores", gin.H{
		"user_id": identity.ID, "name": "Short", "address": "1 Short St",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Store name must be between 20 and 60 characters"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/admin/stores", gin.H{
		"user_id": identity.ID, "name": "Proprietor's First Retail Store", "address": "2 Long St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.JSONEq(t, `{"message":"Store added successfully, user role updated"}`, w.Body.String())

	// The owner already holds the role now, so no promotion message.
	w = env.do(t, http.MethodPost, "/admin/stores", gin.H{
		"user_id": identity.ID, "name": "Proprietor's Second Retail Store", "address": "3 Long St",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"message":"Store added successfully"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/admin/stores", gin.H{
		"user_id": 9999, "name": "Store For A Missing User Row", "address": "4 Long St",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestAdminListStoresTwoDecimals(t *testing.T) {
	env := newTestEnv(t)
	owner, store := env.seedOwnerAndStore(t, "decimals@example.com", "Two Decimal Admin Surface")
	for _, rating := range []int{4, 3, 3} {
		review := &entity.DbReview{StoreID: store.ID, UserID: owner.ID, Rating: rating, Message: "r"}
		require.NoError(t, env.repo.CreateReview(context.Background(), review))
	}

	w := env.do(t, http.MethodGet, "/admin/stores", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stores []entity.AdminStoreItem
	decodeBody(t, w, &stores)
	require.Len(t, stores, 1)
	require.Equal(t, 3.33, stores[0].AverageRating)
}

func TestAdminUpdateAndDeleteStore(t *testing.T) {
	env := newTestEnv(t)
	_, store := env.seedOwnerAndStore(t, "updel@example.com", "Update Delete Fixture Store")

	w := env.do(t, http.MethodPut, "/admin/stores/"+itoa(store.ID), gin.H{
		"name": "Renamed Update Fixture Store", "address": "5 New St",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPut, "/admin/stores/9999", gin.H{
		"name": "Nobody Home At This Address", "address": "6 New St",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Store not found"}`, w.Body.String())

	w = env.do(t, http.MethodDelete, "/admin/stores/"+itoa(store.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/admin/stores/"+itoa(store.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireAdminGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	guarded := gin.New()
	guarded.Use(env.handler.SessionMiddleware())
	adminGroup := guarded.Group("/admin")
	adminGroup.Use(env.handler.RequireAdmin())
	adminGroup.GET("/stats", env.handler.Stats)

	admin := &entity.DbUser{
		Name:         "Guarded Route Administrator",
		Email:        "guard-admin@example.com",
		PasswordHash: "x",
		Role:         entity.UserRoleAdmin,
	}
	require.NoError(t, env.repo.CreateUser(ctx, admin))
	regular := &entity.DbUser{
		Name:         "Guarded Route Regular User",
		Email:        "guard-user@example.com",
		PasswordHash: "x",
		Role:         entity.UserRoleUser,
	}
	require.NoError(t, env.repo.CreateUser(ctx, regular))

	expiry := time.Now().UTC().Add(time.Hour)
	require.NoError(t, env.repo.CreateSession(ctx, &entity.DbSession{
		Token: "admin-token", UserID: admin.ID, Role: admin.Role, ExpiresAt: expiry,
	}))
	require.NoError(t, env.repo.CreateSession(ctx, &entity.DbSession{
		Token: "user-token", UserID: regular.ID, Role: regular.Role, ExpiresAt: expiry,
	}))

	guardedEnv := &testEnv{router: guarded, handler: env.handler, repo: env.repo}

	w := guardedEnv.do(t, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = guardedEnv.do(t, http.MethodGet, "/admin/stats", nil,
		&http.Cookie{Name: "session_cookie_name", Value: "user-token"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = guardedEnv.do(t, http.MethodGet, "/admin/stats", nil,
		&http.Cookie{Name: "session_cookie_name", Value: "admin-token"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

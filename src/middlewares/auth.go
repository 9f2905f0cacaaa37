package middlewares

import (
	"jcr/src/db"
	"jcr/src/models"
	"jcr/src/types"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := strings.Split(bearerToken, " ")[1]
	if reqToken == "" {
		ctx.AbortWithStatus(401)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if err == jwt.ErrSignatureInvalid || err == jwt.ErrTokenMalformed {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.AbortWithError(401, err)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(401)
		return
	}

	// Customer tokens resolve against the customers table, everything else
	// against the staff users table.
	conn := db.GetDb()
	if claims.Role == string(types.ROLE_CUSTOMER) {
		var customer models.Customer
		conn.Model(&models.Customer{}).Where(&models.Customer{ID: uint(uid)}).Find(&customer)
		if uint(uid) != customer.ID || customer.ID < 1 {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.Set("id", customer.ID)
		ctx.Set("email", customer.Email)
		ctx.Set("name", customer.Name)
		ctx.Set("role", string(types.ROLE_CUSTOMER))
		return
	}

	var user models.User
	conn.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)
	if uint(uid) != user.ID || user.ID < 1 {
		ctx.AbortWithStatus(401)
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("name", user.Name)
	ctx.Set("role", user.Role)
}

package main

import (
	"encoding/json"
	"jcr/src/db"
	"jcr/src/lib"
	"jcr/src/models"
	"jcr/src/types"
	"jcr/src/utils"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	awslib "jcr/src/lib/aws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func carHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/cars", func(ctx *gin.Context) {
			var body types.CreateCarRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			car := models.Car{
				Brand:        body.Brand,
				Model:        body.Model,
				PlateNumber:  body.PlateNumber,
				BookingColor: body.Color,
				Price:        body.Price,
				Mileage:      body.Mileage,
				Seats:        body.Seats,
				Fuel:         body.Fuel,
				Gear:         body.Gear,
				ImageURL:     body.ImageURL,
				CarFolderID:  body.CarFolderID,
				UserID:       userId,
			}
			conn := db.GetDb()
			if err := conn.Create(&car).Error; err != nil {
				log.Printf("Error creating car: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car created successfully", "carId": car.ID})
		}).
		GET("/cars/all", func(ctx *gin.Context) {
			var cars []models.Car
			conn := db.GetDb()
			if err := conn.Preload("Bookings").Find(&cars).Error; err != nil {
				log.Printf("Error retrieving Cars: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(cars))
			for _, car := range cars {
				var active int
				for _, booking := range car.Bookings {
					status := strings.ToLower(booking.Status)
					if status == "upcoming" || status == "ongoing" {
						active++
					}
				}
				formatted = append(formatted, gin.H{
					"id":             car.ID,
					"brand":          car.Brand,
					"model":          car.Model,
					"plateNumber":    car.PlateNumber,
					"imageUrl":       car.ImageURL,
					"colorOfBooking": car.BookingColor,
					"price":          car.Price,
					"bookingLength":  active,
				})
			}
			sort.SliceStable(formatted, func(i, j int) bool {
				return formatted[i]["bookingLength"].(int) > formatted[j]["bookingLength"].(int)
			})
			ctx.JSON(http.StatusOK, gin.H{"message": "Cars fetched successfully", "cars": formatted})
		}).
		GET("/cars/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			var car models.Car
			conn := db.GetDb()
			if err := conn.
				Preload("Bookings.Customer").
				Where("id = ?", params.ID).
				First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}
			bookings := make([]gin.H, 0, len(car.Bookings))
			for _, booking := range car.Bookings {
				item := gin.H{
					"id":        booking.ID,
					"start":     booking.StartDate,
					"end":       booking.EndDate,
					"status":    booking.Status,
					"startTime": booking.StartTime,
					"endTime":   booking.EndTime,
				}
				if booking.Customer != nil {
					item["customerName"] = booking.Customer.Name
					item["customerContact"] = booking.Customer.Contact
				}
				bookings = append(bookings, item)
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Car fetched successfully",
				"car": gin.H{
					"id":             car.ID,
					"brand":          car.Brand,
					"model":          car.Model,
					"plateNumber":    car.PlateNumber,
					"imageUrl":       car.ImageURL,
					"colorOfBooking": car.BookingColor,
					"price":          car.Price,
					"mileage":        car.Mileage,
					"status":         car.Status,
					"totalEarnings":  car.TotalEarnings,
					"carFolderId":    car.CarFolderID,
					"bookings":       bookings,
				},
				"isAdmin": userId == car.UserID || isSuperAdmin(userId),
			})
		}).
		GET("/cars/earnings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var car models.Car
			if err := conn.Preload("Bookings").Where("id = ?", params.ID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}

			var earnings types.EarningsSummary
			if cached, ok := lib.GetCachedCarEarnings(ctx, car.ID); ok {
				if err := json.Unmarshal([]byte(cached), &earnings); err == nil {
					ctx.JSON(http.StatusOK, gin.H{
						"message":  "Car earnings fetched successfully",
						"earnings": earnings,
						"total":    car.TotalEarnings,
					})
					return
				}
			}
			earnings = utils.CalculateEarnings(car.Bookings)
			if payload, err := json.Marshal(earnings); err == nil {
				lib.CacheCarEarnings(ctx, car.ID, string(payload))
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":  "Car earnings fetched successfully",
				"earnings": earnings,
				"total":    car.TotalEarnings,
			})
		}).
		GET("/cars/thismonth/earnings/all", func(ctx *gin.Context) {
			var cars []models.Car
			conn := db.GetDb()
			if err := conn.Preload("Bookings").Find(&cars).Error; err != nil {
				log.Printf("Error retrieving Cars: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if len(cars) == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No Cars found"})
				return
			}
			carData := make([]gin.H, 0, len(cars))
			for _, car := range cars {
				earnings := utils.CalculateEarnings(car.Bookings)
				if earnings.ThisMonth == 0 {
					continue
				}
				carData = append(carData, gin.H{
					"id":             car.ID,
					"brand":          car.Brand,
					"model":          car.Model,
					"plateNumber":    car.PlateNumber,
					"colorOfBooking": car.BookingColor,
					"thisMonth":      earnings.ThisMonth,
				})
			}
			if len(carData) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "No earnings yet"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car earnings fetched successfully", "earnings": carData})
		}).
		GET("/cars/update-earnings/all", func(ctx *gin.Context) {
			conn := db.GetDb()
			var carIDs []uint
			if err := conn.Model(&models.Car{}).Pluck("id", &carIDs).Error; err != nil {
				log.Printf("Error retrieving Cars: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if len(carIDs) == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No Cars found"})
				return
			}
			err := conn.Transaction(func(tx *gorm.DB) error {
				for _, carId := range carIDs {
					if _, err := utils.RecomputeCarEarnings(tx, carId); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error recomputing earnings: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			for _, carId := range carIDs {
				lib.InvalidateCarEarnings(ctx, carId)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car earnings updated successfully"})
		}).
		PUT("/cars/update-earnings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ?", params.ID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}
			err := conn.Transaction(func(tx *gorm.DB) error {
				_, err := utils.RecomputeCarEarnings(tx, car.ID)
				return err
			})
			if err != nil {
				log.Printf("Error recomputing earnings for car %d: %s\n", car.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateCarEarnings(ctx, car.ID)
			ctx.JSON(http.StatusOK, gin.H{"message": "Car earnings updated successfully", "CarId": car.ID})
		}).
		GET("/cars/new-customer/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var car models.Car
			if err := conn.Preload("Bookings.Customer").Where("id = ?", params.ID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Car not found"})
				return
			}
			now := time.Now()
			var count int
			for _, booking := range car.Bookings {
				if booking.Customer == nil {
					continue
				}
				joined, err := utils.ParseDate(booking.Customer.JoiningDate)
				if err != nil {
					continue
				}
				if joined.Month() == now.Month() && joined.Year() == now.Year() {
					count++
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Customer fetched successfully", "newCustomers": count})
		}).
		PUT("/cars/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateCarRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ? AND user_id = ?", params.ID, userId).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}
			updates := map[string]any{}
			if body.Color != nil {
				updates["booking_color"] = *body.Color
			}
			if body.Price != nil {
				updates["price"] = *body.Price
			}
			if body.Mileage != nil {
				updates["mileage"] = *body.Mileage
			}
			if body.ImageURL != nil {
				updates["image_url"] = *body.ImageURL
			}
			if body.Status != nil {
				updates["status"] = *body.Status
			}
			if err := conn.Model(&models.Car{}).Where("id = ?", car.ID).Updates(updates).Error; err != nil {
				log.Printf("Error updating car %d: %s\n", car.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.ImageURL != nil && car.ImageURL != "" {
				if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(car.ImageURL)); err != nil {
					log.Printf("Error deleting previous car image %d: %s\n", car.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car updated successfully", "CarId": car.ID})
		}).
		DELETE("/cars/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ? AND user_id = ?", params.ID, userId).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}
			if err := conn.Delete(&models.Car{}, "id = ?", car.ID).Error; err != nil {
				log.Printf("Error deleting car %d: %s\n", car.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if car.ImageURL != "" {
				if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(car.ImageURL)); err != nil {
					log.Printf("Error deleting car image %d: %s\n", car.ID, err.Error())
				}
			}
			if car.CarFolderID != "" {
				if err := awslib.S3DeleteFolder(ctx, car.CarFolderID); err != nil {
					log.Printf("Error deleting car folder %d: %s\n", car.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully", "CarId": car.ID})
		})
	return g
}

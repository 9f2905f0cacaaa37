package main

import (
	"jcr/src/db"
	"jcr/src/models"
	"jcr/src/types"
	"jcr/src/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func calendarHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/calendar/all", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			conn := db.GetDb()
			if err := conn.
				Preload("Car").
				Preload("Customer").
				Order("start_date asc, start_time asc").
				Find(&bookings).Error; err != nil {
				log.Printf("Error retrieving Bookings: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(bookings))
			for _, booking := range bookings {
				if strings.EqualFold(booking.Status, string(types.BOOKING_COMPLETED)) {
					continue
				}
				item := gin.H{
					"id":        booking.ID,
					"startDate": booking.StartDate,
					"endDate":   booking.EndDate,
					"status":    booking.Status,
					"startTime": booking.StartTime,
					"endTime":   booking.EndTime,
					"allDay":    booking.AllDay,
					"carId":     booking.CarID,
					"isAdmin":   userId == booking.UserID || isSuperAdmin(userId),
				}
				if booking.Car != nil {
					item["color"] = booking.Car.BookingColor
					item["carName"] = carDisplayName(booking.Car)
				}
				if booking.Customer != nil {
					item["customerName"] = booking.Customer.Name
					item["customerContact"] = booking.Customer.Contact
				}
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings fetched successfully", "bookings": formatted})
		}).
		PUT("/calendar/change-color/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ChangeColorRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ? AND user_id = ?", params.ID, userId).First(&car).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Car not found"})
				return
			}
			if err := conn.Model(&models.Car{}).Where("id = ?", car.ID).Update("booking_color", body.Color).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking color updated successfully", "CarId": car.ID})
		}).
		PUT("/calendar/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CalendarUpdateRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			booking, err := findOwnedBooking(conn, params.ID, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			updates := map[string]any{}
			if body.StartDate != nil {
				d, err := utils.ParseDate(*body.StartDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				updates["start_date"] = utils.FormatDate(d)
			}
			if body.EndDate != nil {
				d, err := utils.ParseDate(*body.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				updates["end_date"] = utils.FormatDate(d)
			}
			if body.StartTime != nil {
				updates["start_time"] = *body.StartTime
			}
			if body.EndTime != nil {
				updates["end_time"] = *body.EndTime
			}
			if body.AllDay != nil {
				updates["all_day"] = *body.AllDay
			}
			err = conn.Transaction(func(tx *gorm.DB) error {
				if len(updates) > 0 {
					if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
						return err
					}
				}
				if body.CustomerName != nil && *body.CustomerName != "" {
					if err := tx.Model(&models.Customer{}).Where("id = ?", booking.CustomerID).Update("name", *body.CustomerName).Error; err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error rescheduling booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "BookingId": booking.ID})
		}).
		DELETE("/calendar/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			booking, err := findOwnedBooking(conn, params.ID, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			err = conn.Transaction(func(tx *gorm.DB) error {
				return deleteBookingRecords(tx, booking)
			})
			if err != nil {
				log.Printf("Error deleting booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully", "BookingId": booking.ID})
		})
	return g
}

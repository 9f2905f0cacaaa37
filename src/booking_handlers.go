package main

import (
	"errors"
	"fmt"
	"jcr/src/config"
	"jcr/src/db"
	"jcr/src/lib"
	"jcr/src/lib/mailer"
	"jcr/src/models"
	"jcr/src/types"
	"jcr/src/utils"
	"log"
	"net/http"
	"strings"
	"time"

	awslib "jcr/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func isSuperAdmin(userId uint) bool {
	return userId == config.SUPER_ADMIN_ID
}

// findOwnedBooking scopes lookups to the requesting host. A booking that
// exists but belongs to someone else reads the same as one that does not
// exist at all.
func findOwnedBooking(tx *gorm.DB, id string, userId uint, preloads ...string) (*models.Booking, error) {
	q := tx.Model(&models.Booking{})
	for _, preload := range preloads {
		q = q.Preload(preload)
	}
	if isSuperAdmin(userId) {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("id = ? AND user_id = ?", id, userId)
	}
	var booking models.Booking
	if err := q.First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func customerFolderName(name, contact string) string {
	return fmt.Sprintf("customer/%s", slug.Make(name+"_"+contact))
}

func bookingFolderName(bookingId string) string {
	return fmt.Sprintf("booking/%s-%d", bookingId, time.Now().Unix())
}

func findOrCreateCustomer(ctx *gin.Context, tx *gorm.DB, name, contact, address string) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where(&models.Customer{Name: name, Contact: contact}).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	folderId, err := awslib.S3CreateFolder(ctx, customerFolderName(name, contact))
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	customer = models.Customer{
		Name:        name,
		Contact:     contact,
		Address:     address,
		FolderID:    folderId,
		JoiningDate: utils.FormatDate(time.Now()),
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func attachDocuments(tx *gorm.DB, customerId uint, inputs []types.DocumentInput) ([]*models.Document, error) {
	docs := make([]*models.Document, 0, len(inputs))
	for _, input := range inputs {
		docType := input.DocType
		if docType == "" {
			docType = "others"
		}
		doc := models.Document{
			Name:       input.Name,
			URL:        input.URL,
			Type:       input.Type,
			DocType:    docType,
			CustomerID: customerId,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

func attachCarImages(tx *gorm.DB, bookingId string, inputs []types.CarImageInput) ([]*models.CarImage, error) {
	images := make([]*models.CarImage, 0, len(inputs))
	for _, input := range inputs {
		image := models.CarImage{
			Name:      input.Name,
			URL:       input.URL,
			BookingID: bookingId,
		}
		if err := tx.Create(&image).Error; err != nil {
			return nil, err
		}
		images = append(images, &image)
	}
	return images, nil
}

// deleteBookingRecords removes a booking and its car images, reversing the
// car's earnings unless the booking already completed. Runs inside one
// transaction so a failed delete leaves the earnings untouched.
func deleteBookingRecords(tx *gorm.DB, booking *models.Booking) error {
	if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.CarImage{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.Booking{}, "id = ?", booking.ID).Error; err != nil {
		return err
	}
	if !strings.EqualFold(booking.Status, string(types.BOOKING_COMPLETED)) && booking.TotalEarnings != nil && *booking.TotalEarnings != 0 {
		if err := tx.Model(&models.Car{}).
			Where("id = ?", booking.CarID).
			Update("total_earnings", gorm.Expr("total_earnings - ?", *booking.TotalEarnings)).
			Error; err != nil {
			return err
		}
	}
	return nil
}

func firstPhotoURL(car *models.Car) string {
	if car == nil || len(car.Photos) == 0 {
		return ""
	}
	return car.Photos[0].URL
}

func carDisplayName(car *models.Car) string {
	if car == nil {
		return ""
	}
	return car.Brand + " " + car.Model
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()

			var car models.Car
			if err := conn.Where("id = ?", body.CarID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
				return
			}
			start, err := utils.CombineDateTime(body.StartDate, body.StartTime)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			end, err := utils.CombineDateTime(body.EndDate, body.EndTime)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			customerId := body.CustomerID
			if customerId == 0 {
				customer, err := findOrCreateCustomer(ctx, conn, body.CustomerName, body.CustomerContact, "")
				if err != nil {
					log.Printf("Error creating customer: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				customerId = customer.ID
			}

			booking := models.Booking{
				Status:           string(types.BOOKING_UPCOMING),
				StartDate:        utils.FormatDate(start),
				EndDate:          utils.FormatDate(end),
				StartTime:        body.StartTime,
				EndTime:          body.EndTime,
				AllDay:           body.AllDay,
				CarID:            body.CarID,
				CustomerID:       customerId,
				UserID:           userId,
				DailyRentalPrice: body.DailyRentalPrice,
				TotalEarnings:    body.TotalAmount,
				AdvancePayment:   body.Advance,
				Type:             body.Type,
			}
			err = utils.CreateBooking(ctx, conn, &booking, start, end, func(tx *gorm.DB, b *models.Booking) error {
				folderId, err := awslib.S3CreateFolder(ctx, bookingFolderName(b.ID))
				if err != nil {
					return fmt.Errorf("failed to create folder: %w", err)
				}
				b.BookingFolderID = folderId
				return tx.Model(&models.Booking{}).Where("id = ?", b.ID).Update("booking_folder_id", folderId).Error
			})
			if err != nil {
				if errors.Is(err, utils.ErrCarUnavailable) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Car is not available"})
					return
				}
				log.Printf("Error creating booking: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Booking created successfully",
				"bookingId": booking.ID,
				"folderId":  booking.BookingFolderID,
			})
		}).
		POST("/bookings/multiple", func(ctx *gin.Context) {
			var body types.MultipleBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()

			created := make([]gin.H, 0, len(body))
			for _, item := range body {
				customer, err := findOrCreateCustomer(ctx, conn, item.CustomerName, item.CustomerContact, item.CustomerAddress)
				if err != nil {
					log.Printf("Error creating customer: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				startDate, err := utils.ParseDate(item.StartDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				endDate, err := utils.ParseDate(item.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				booking := models.Booking{
					Status:           item.Status,
					StartDate:        utils.FormatDate(startDate),
					EndDate:          utils.FormatDate(endDate),
					StartTime:        item.StartTime,
					EndTime:          item.EndTime,
					AllDay:           item.AllDay,
					CarID:            item.CarID,
					CustomerID:       customer.ID,
					UserID:           userId,
					SecurityDeposit:  item.SecurityDeposit,
					DailyRentalPrice: item.DailyRentalPrice,
					AdvancePayment:   item.AdvancePayment,
					TotalEarnings:    item.TotalEarnings,
					PaymentMethod:    item.PaymentMethod,
					OdometerReading:  item.OdometerReading,
					Notes:            item.Notes,
				}
				// import path: historic records go in as-is, no availability gate
				err = conn.Transaction(func(tx *gorm.DB) error {
					id, err := utils.NextBookingID(tx)
					if err != nil {
						return err
					}
					booking.ID = id
					folderId, err := awslib.S3CreateFolder(ctx, bookingFolderName(id))
					if err != nil {
						return fmt.Errorf("failed to create folder: %w", err)
					}
					booking.BookingFolderID = folderId
					return tx.Create(&booking).Error
				})
				if err != nil {
					log.Printf("Error creating booking: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				created = append(created, gin.H{
					"id":              booking.ID,
					"startDate":       booking.StartDate,
					"endDate":         booking.EndDate,
					"startTime":       booking.StartTime,
					"endTime":         booking.EndTime,
					"status":          booking.Status,
					"carId":           booking.CarID,
					"customerId":      customer.ID,
					"customerName":    customer.Name,
					"customerContact": customer.Contact,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking created successfully", "bookings": created})
		}).
		GET("/bookings/all", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			conn := db.GetDb()
			if err := conn.
				Preload("Car.Photos").
				Preload("Customer").
				Order("length(id) desc, id desc").
				Find(&bookings).Error; err != nil {
				log.Printf("Error retrieving Bookings: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(bookings))
			for _, booking := range bookings {
				item := gin.H{
					"id":          booking.ID,
					"start":       booking.StartDate,
					"end":         booking.EndDate,
					"startTime":   booking.StartTime,
					"endTime":     booking.EndTime,
					"status":      booking.Status,
					"fastrack":    booking.Fastrack,
					"cancelledBy": booking.CancelledBy,
					"otp":         booking.OTP,
					"type":        booking.Type,
					"isAdmin":     userId == booking.UserID || isSuperAdmin(userId),
				}
				if booking.Car != nil {
					item["carId"] = booking.Car.ID
					item["carName"] = carDisplayName(booking.Car)
					item["carPlateNumber"] = booking.Car.PlateNumber
					item["carImageUrl"] = firstPhotoURL(booking.Car)
					item["carColor"] = booking.Car.BookingColor
					item["odometerReading"] = booking.Car.OdometerReading
				}
				if booking.Customer != nil {
					item["customerName"] = booking.Customer.Name
					item["customerContact"] = booking.Customer.Contact
				}
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings fetched successfully", "bookings": formatted})
		}).
		GET("/bookings/requested", func(ctx *gin.Context) {
			var bookings []models.Booking
			conn := db.GetDb()
			if err := conn.
				Preload("Car").
				Preload("Customer").
				Where(&models.Booking{Status: string(types.BOOKING_REQUESTED)}).
				Find(&bookings).Error; err != nil {
				log.Printf("Error retrieving Bookings: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(bookings))
			for _, booking := range bookings {
				item := gin.H{
					"id":        booking.ID,
					"start":     booking.StartDate,
					"end":       booking.EndDate,
					"startTime": booking.StartTime,
					"endTime":   booking.EndTime,
					"status":    booking.Status,
					"carId":     booking.CarID,
					"type":      booking.Type,
				}
				if booking.Customer != nil {
					item["customerName"] = booking.Customer.Name
					item["customerContact"] = booking.Customer.Contact
				}
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings fetched successfully", "bookings": formatted})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			var booking models.Booking
			conn := db.GetDb()
			if err := conn.
				Preload("Car.Photos").
				Preload("CarImages").
				Preload("Customer.Documents").
				Where("id = ?", params.ID).
				First(&booking).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			item := gin.H{
				"id":                 booking.ID,
				"start":              booking.StartDate,
				"end":                booking.EndDate,
				"startTime":          booking.StartTime,
				"endTime":            booking.EndTime,
				"status":             booking.Status,
				"dailyRentalPrice":   booking.DailyRentalPrice,
				"securityDeposit":    booking.SecurityDeposit,
				"totalPrice":         booking.TotalEarnings,
				"advancePayment":     booking.AdvancePayment,
				"paymentMethod":      booking.PaymentMethod,
				"odometerReading":    booking.OdometerReading,
				"endodometerReading": booking.EndOdometerReading,
				"fastrack":           booking.Fastrack,
				"endfastrack":        booking.EndFastrack,
				"notes":              booking.Notes,
				"selfieUrl":          booking.SelfieURL,
				"carImages":          booking.CarImages,
				"customerId":         booking.CustomerID,
				"bookingFolderId":    booking.BookingFolderID,
				"cancelledBy":        booking.CancelledBy,
				"type":               booking.Type,
				"otp":                booking.OTP,
			}
			if booking.Car != nil {
				item["carId"] = booking.Car.ID
				item["carName"] = carDisplayName(booking.Car)
				item["carPlateNumber"] = booking.Car.PlateNumber
				item["carImageUrl"] = firstPhotoURL(booking.Car)
				item["currOdometerReading"] = booking.Car.OdometerReading
			}
			if booking.Customer != nil {
				item["customerName"] = booking.Customer.Name
				item["customerContact"] = booking.Customer.Contact
				item["customerMail"] = booking.Customer.Email
				item["customerAddress"] = booking.Customer.Address
				item["documents"] = booking.Customer.Documents
				item["folderId"] = booking.Customer.FolderID
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Booking fetched successfully",
				"booking": item,
				"isAdmin": userId == booking.UserID || isSuperAdmin(userId),
			})
		}).
		PUT("/bookings/delete-multiple", func(ctx *gin.Context) {
			var body types.MultipleBookingDeleteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			folders := make([]string, 0, len(body.BookingIDs))
			for _, id := range body.BookingIDs {
				booking, err := findOwnedBooking(conn, id, userId)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
					return
				}
				err = conn.Transaction(func(tx *gorm.DB) error {
					return deleteBookingRecords(tx, booking)
				})
				if err != nil {
					log.Printf("Error deleting booking %s: %s\n", id, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if booking.BookingFolderID != "" {
					folders = append(folders, booking.BookingFolderID)
				}
			}
			for _, folderId := range folders {
				if err := awslib.S3DeleteFolder(ctx, folderId); err != nil {
					log.Printf("Error deleting folder %s: %s\n", folderId, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
		}).
		PUT("/bookings/:id/update", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.BookingUpdateRequestBody
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

			updates := map[string]any{"total_earnings": body.TotalAmount}
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
			if body.Status != nil && *body.Status != booking.Status {
				if !utils.CanTransition(types.BookingStatus(booking.Status), types.BookingStatus(*body.Status)) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot change status from %s to %s", booking.Status, *body.Status)})
					return
				}
				updates["status"] = *body.Status
			}
			if body.CarID != nil {
				updates["car_id"] = *body.CarID
			}
			if body.SecurityDeposit != nil {
				updates["security_deposit"] = *body.SecurityDeposit
			}
			if body.DailyRentalPrice != nil {
				updates["daily_rental_price"] = *body.DailyRentalPrice
			}
			if body.PaymentMethod != nil {
				updates["payment_method"] = *body.PaymentMethod
			}
			if body.AdvancePayment != nil {
				updates["advance_payment"] = *body.AdvancePayment
			}
			if body.OdometerReading != nil {
				updates["odometer_reading"] = *body.OdometerReading
			}
			if body.EndOdometerReading != nil {
				updates["end_odometer_reading"] = *body.EndOdometerReading
			}
			if body.Notes != nil {
				updates["notes"] = *body.Notes
			}
			if body.Type != nil {
				updates["type"] = *body.Type
			}
			if body.SelfieURL != nil {
				updates["selfie_url"] = *body.SelfieURL
			}

			customerUpdates := map[string]any{}
			if body.CustomerName != nil {
				customerUpdates["name"] = *body.CustomerName
			}
			if body.CustomerAddress != nil {
				customerUpdates["address"] = *body.CustomerAddress
			}
			if body.CustomerContact != nil {
				customerUpdates["contact"] = *body.CustomerContact
			}

			err = conn.Transaction(func(tx *gorm.DB) error {
				if len(customerUpdates) > 0 && booking.CustomerID != 0 {
					if err := tx.Model(&models.Customer{}).Where("id = ?", booking.CustomerID).Updates(customerUpdates).Error; err != nil {
						return err
					}
				}
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
					return err
				}
				if _, err := attachDocuments(tx, booking.CustomerID, body.Documents); err != nil {
					return err
				}
				_, err := attachCarImages(tx, booking.ID, body.CarImages)
				return err
			})
			if err != nil {
				log.Printf("Error updating booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var allDocuments []*models.Document
			conn.Where("customer_id = ?", booking.CustomerID).Find(&allDocuments)
			var allImages []*models.CarImage
			conn.Where("booking_id = ?", booking.ID).Find(&allImages)
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Booking updated successfully",
				"bookingId": booking.ID,
				"documents": allDocuments,
				"carImages": allImages,
			})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
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
			if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_CANCELLED) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot cancel a %s booking", booking.Status)})
				return
			}
			if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
				"status":       string(types.BOOKING_CANCELLED),
				"cancelled_by": string(types.CANCELLED_BY_HOST),
			}).Error; err != nil {
				log.Printf("Error cancelling booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "BookingId": booking.ID})
		}).
		PUT("/bookings/:id/consent", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ConsentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			booking, err := findOwnedBooking(conn, params.ID, userId, "Customer", "Car")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}

			var email, customerName string
			if booking.Customer != nil {
				email = booking.Customer.Email
				customerName = booking.Customer.Name
			}
			if customerName == "" {
				customerName = "Customer"
			}

			switch body.Action {
			case "confirm":
				if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_UPCOMING) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot confirm a %s booking", booking.Status)})
					return
				}
				if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("status", string(types.BOOKING_UPCOMING)).Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				mailer.SendBookingConfirmation(email, customerName, booking.ID, carDisplayName(booking.Car), booking.StartDate, booking.EndDate)
				ctx.JSON(http.StatusOK, gin.H{"message": "Booking approved successfully", "BookingId": booking.ID})
			case "reject":
				if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_CANCELLED) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot reject a %s booking", booking.Status)})
					return
				}
				if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
					"status":       string(types.BOOKING_CANCELLED),
					"cancelled_by": string(types.CANCELLED_BY_HOST),
				}).Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				mailer.SendBookingRejection(email, customerName, booking.ID, carDisplayName(booking.Car), booking.StartDate, booking.EndDate)
				ctx.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "BookingId": booking.ID})
			default:
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Wrong action string", "BookingId": booking.ID})
			}
		}).
		PUT("/bookings/:id/start", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.BookingStartRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.RoleQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()

			booking, ok := resolveBookingForRole(ctx, conn, params.ID, userId, query)
			if !ok {
				return
			}
			if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_ONGOING) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot start a %s booking", booking.Status)})
				return
			}

			startDate, err := utils.ParseDate(body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			returnDate, err := utils.ParseDate(body.ReturnDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			var updated models.Booking
			err = conn.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.Car{}).Where("id = ?", booking.CarID).Updates(map[string]any{
					"odometer_reading": body.OdometerReading,
					"fastrack":         body.Fastrack,
				}).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Customer{}).Where("id = ?", booking.CustomerID).Updates(map[string]any{
					"name":    body.CustomerName,
					"contact": body.CustomerContact,
					"address": body.CustomerAddress,
					"email":   body.CustomerMail,
				}).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
					"car_id":             body.SelectedCar,
					"start_date":         utils.FormatDate(startDate),
					"start_time":         body.StartTime,
					"end_date":           utils.FormatDate(returnDate),
					"end_time":           body.ReturnTime,
					"security_deposit":   body.SecurityDeposit,
					"odometer_reading":   body.OdometerReading,
					"fastrack":           body.Fastrack,
					"advance_payment":    body.BookingAmountReceived,
					"total_earnings":     body.TotalAmount,
					"payment_method":     body.PaymentMethod,
					"notes":              body.Notes,
					"daily_rental_price": body.DailyRentalPrice,
					"status":             string(types.BOOKING_ONGOING),
				}).Error; err != nil {
					return err
				}
				return tx.Where("id = ?", booking.ID).First(&updated).Error
			})
			if err != nil {
				log.Printf("Error starting booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":         "Booking started successfully",
				"updatedStatus":   updated.Status,
				"updatedFastrack": updated.Fastrack,
			})
		}).
		PUT("/bookings/:id/start/document", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.BookingStartDocumentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.RoleQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()

			booking, ok := resolveBookingForRole(ctx, conn, params.ID, userId, query)
			if !ok {
				return
			}
			err := conn.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("selfie_url", body.SelfieURL).Error; err != nil {
					return err
				}
				if _, err := attachDocuments(tx, booking.CustomerID, body.Documents); err != nil {
					return err
				}
				_, err := attachCarImages(tx, booking.ID, body.CarImages)
				return err
			})
			if err != nil {
				log.Printf("Error attaching booking documents %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking started successfully"})
		}).
		PUT("/bookings/:id/end", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.BookingEndRequestBody
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
			if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_COMPLETED) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot end a %s booking", booking.Status)})
				return
			}

			// advisory figure; the stored total always comes from the host
			cost, err := utils.CalculateCost(booking.StartDate, booking.EndDate, booking.StartTime, booking.EndTime, booking.DailyRentalPrice)
			if err != nil {
				log.Printf("Could not compute reference cost for booking %s: %s\n", booking.ID, err.Error())
			} else {
				log.Printf("Reference cost for booking %s: %.0f\n", booking.ID, cost)
			}

			endDate, err := utils.ParseDate(body.EndDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			var updated models.Booking
			err = conn.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
					"end_date":             utils.FormatDate(endDate),
					"end_time":             body.EndTime,
					"status":               string(types.BOOKING_COMPLETED),
					"end_odometer_reading": body.OdometerReading,
					"end_fastrack":         body.Fastrack,
					"otp":                  "",
				}).Error; err != nil {
					return err
				}
				if err := tx.Where("id = ?", booking.ID).First(&updated).Error; err != nil {
					return err
				}
				carUpdates := map[string]any{
					"odometer_reading": body.OdometerReading,
					"fastrack":         body.Fastrack,
				}
				if updated.TotalEarnings != nil && *updated.TotalEarnings > 0 {
					carUpdates["total_earnings"] = gorm.Expr("total_earnings + ?", *updated.TotalEarnings)
				}
				return tx.Model(&models.Car{}).Where("id = ?", updated.CarID).Updates(carUpdates).Error
			})
			if err != nil {
				log.Printf("Error ending booking %s: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateCarEarnings(ctx, updated.CarID)
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking ended successfully", "updatedStatus": updated.Status})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			booking, err := findOwnedBooking(conn, params.ID, userId, "CarImages")
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
			if len(booking.CarImages) > 0 {
				keys := make([]string, 0, len(booking.CarImages))
				for _, image := range booking.CarImages {
					keys = append(keys, awslib.S3KeyFromURL(image.URL))
				}
				if err := awslib.S3DeleteMultipleFiles(ctx, keys); err != nil {
					log.Printf("Error deleting car images for booking %s: %s\n", booking.ID, err.Error())
				}
			}
			if booking.SelfieURL != "" {
				if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(booking.SelfieURL)); err != nil {
					log.Printf("Error deleting selfie for booking %s: %s\n", booking.ID, err.Error())
				}
			}
			if booking.BookingFolderID != "" {
				if err := awslib.S3DeleteFolder(ctx, booking.BookingFolderID); err != nil {
					log.Printf("Error deleting folder for booking %s: %s\n", booking.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully", "BookingId": booking.ID})
		}).
		DELETE("/bookings/:id/car-images/all", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			booking, err := findOwnedBooking(conn, params.ID, userId, "CarImages")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			if err := conn.Where("booking_id = ?", booking.ID).Delete(&models.CarImage{}).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			keys := make([]string, 0, len(booking.CarImages))
			for _, image := range booking.CarImages {
				keys = append(keys, awslib.S3KeyFromURL(image.URL))
			}
			if err := awslib.S3DeleteMultipleFiles(ctx, keys); err != nil {
				log.Printf("Error deleting car images for booking %s: %s\n", booking.ID, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car image deleted successfully", "BookingId": booking.ID})
		}).
		DELETE("/bookings/car-image/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var image models.CarImage
			if err := conn.Where("id = ?", params.ID).First(&image).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Car image not found"})
				return
			}
			if err := conn.Delete(&models.CarImage{}, "id = ?", image.ID).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(image.URL)); err != nil {
				log.Printf("Error deleting car image file %d: %s\n", image.ID, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car image deleted successfully", "BookingId": params.ID})
		}).
		DELETE("/bookings/selfie-url/:id", func(ctx *gin.Context) {
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
			if booking.SelfieURL != "" {
				if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(booking.SelfieURL)); err != nil {
					log.Printf("Error deleting selfie for booking %s: %s\n", booking.ID, err.Error())
				}
			}
			if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("selfie_url", "").Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "selfie deleted successfully", "BookingId": booking.ID})
		})
	return g
}

// resolveBookingForRole loads the booking for the start endpoints. Customers
// prove possession of the handover OTP; hosts must own the booking.
func resolveBookingForRole(ctx *gin.Context, conn *gorm.DB, id string, userId uint, query types.RoleQuery) (*models.Booking, bool) {
	if query.Role == string(types.ROLE_CUSTOMER) {
		var booking models.Booking
		if err := conn.Where("id = ?", id).First(&booking).Error; err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
			return nil, false
		}
		if query.OTP == "" || query.OTP != booking.OTP {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return nil, false
		}
		return &booking, true
	}
	booking, err := findOwnedBooking(conn, id, userId)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
		return nil, false
	}
	return booking, true
}

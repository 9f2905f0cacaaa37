package main

import (
	"errors"
	"fmt"
	"jcr/src/db"
	"jcr/src/models"
	"jcr/src/types"
	"jcr/src/utils"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	awslib "jcr/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

func customerToken(customer *models.Customer) (string, error) {
	claims := types.Claims{
		Name: customer.Name,
		Role: string(types.ROLE_CUSTOMER),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.Itoa(int(customer.ID)),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func findCustomerByUsername(tx *gorm.DB, username string) (*models.Customer, error) {
	var customer models.Customer
	var err error
	if strings.Contains(username, "@") {
		err = tx.Where(&models.Customer{Email: username}).First(&customer).Error
	} else {
		err = tx.Where(&models.Customer{Contact: username}).First(&customer).Error
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func customerCarView(car *models.Car, customerId uint) gin.H {
	photos := make([]string, 0, len(car.Photos))
	for _, photo := range car.Photos {
		photos = append(photos, photo.URL)
	}
	favorite := false
	for _, fav := range car.Favorites {
		if fav.CustomerID == customerId {
			favorite = true
			break
		}
	}
	return gin.H{
		"id":       car.ID,
		"brand":    car.Brand,
		"model":    car.Model,
		"imageUrl": car.ImageURL,
		"price":    car.Price,
		"seats":    car.Seats,
		"fuel":     car.Fuel,
		"gear":     car.Gear,
		"favorite": favorite,
		"photos":   photos,
	}
}

// customerAuthHandlers covers the unauthenticated customer surface: account
// creation, sign-in and the public car catalogue.
func customerAuthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/customer/signup", func(ctx *gin.Context) {
			var body types.CustomerSignupRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var existing models.Customer
			err := conn.Where(&models.Customer{Name: body.Name, Contact: body.Contact}).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer already exist"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			folderId, err := awslib.S3CreateFolder(ctx, customerFolderName(body.Name, body.Contact))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Folder creation failed"})
				return
			}
			customer := models.Customer{
				Name:        body.Name,
				Contact:     body.Contact,
				Password:    body.Password,
				Email:       body.Email,
				FolderID:    folderId,
				JoiningDate: utils.FormatDate(time.Now()),
			}
			if err := conn.Create(&customer).Error; err != nil {
				log.Printf("Error creating customer: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			token, err := customerToken(&customer)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "User created successfully",
				"token":   token,
				"id":      customer.ID,
				"name":    customer.Name,
			})
		}).
		POST("/customer/signin", func(ctx *gin.Context) {
			var body types.SigninRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Wrong Input type"})
				return
			}
			conn := db.GetDb()
			var customer *models.Customer

			if body.Provider == "google" {
				var found models.Customer
				err := conn.Where(&models.Customer{Email: body.Username}).First(&found).Error
				if err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
					folderId, err := awslib.S3CreateFolder(ctx, customerFolderName(body.Name, strings.Split(body.Username, "@")[0]))
					if err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": "Folder creation failed"})
						return
					}
					found = models.Customer{
						Name:        body.Name,
						Email:       body.Username,
						Password:    body.Password,
						ImageURL:    body.ImageURL,
						Provider:    body.Provider,
						FolderID:    folderId,
						JoiningDate: utils.FormatDate(time.Now()),
					}
					if err := conn.Create(&found).Error; err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
				customer = &found
			} else {
				found, err := findCustomerByUsername(conn, body.Username)
				if err != nil {
					ctx.JSON(http.StatusForbidden, gin.H{"error": "Invalid username"})
					return
				}
				if found.Password == "" {
					// provider accounts adopt the first password they sign in with
					if err := conn.Model(&models.Customer{}).Where("id = ?", found.ID).Update("password", body.Password).Error; err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				} else if found.Password != body.Password {
					ctx.JSON(http.StatusForbidden, gin.H{"error": "Invalid password"})
					return
				}
				customer = found
			}

			token, err := customerToken(customer)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "User signed in successfully",
				"token":   token,
				"id":      customer.ID,
				"name":    customer.Name,
				"image":   customer.ImageURL,
			})
		}).
		POST("/customer/checkMail", func(ctx *gin.Context) {
			var body struct {
				Username string `json:"username" binding:"required"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username"})
				return
			}
			conn := db.GetDb()
			customer, err := findCustomerByUsername(conn, body.Username)
			if err != nil {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Invalid username"})
				return
			}
			isPassword := true
			if customer.Provider == "google" {
				isPassword = customer.Password != ""
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":    "Username is correct",
				"isPassword": isPassword,
				"customer":   customer,
			})
		}).
		GET("/customer/car/all", func(ctx *gin.Context) {
			var cars []models.Car
			conn := db.GetDb()
			if err := conn.
				Preload("Photos").
				Preload("Favorites").
				Where(&models.Car{Status: string(types.CAR_ACTIVE)}).
				Find(&cars).Error; err != nil {
				log.Printf("Error retrieving Cars: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(cars))
			for i := range cars {
				formatted = append(formatted, customerCarView(&cars[i], 0))
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Cars fetched successfully", "cars": formatted})
		}).
		GET("/customer/car/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var car models.Car
			if err := conn.
				Preload("Photos").
				Preload("Favorites").
				Where("id = ? AND status = ?", params.ID, string(types.CAR_ACTIVE)).
				First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Car fetched successfully", "car": customerCarView(&car, 0)})
		}).
		GET("/customer/filtered-cars", func(ctx *gin.Context) {
			var query types.FilterCarsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Wrong Input type"})
				return
			}
			searchStart, err := utils.CombineDateTime(query.StartDate, query.StartTime)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			searchEnd, err := utils.CombineDateTime(query.EndDate, query.EndTime)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var cars []models.Car
			conn := db.GetDb()
			if err := conn.
				Preload("Bookings").
				Preload("Photos").
				Preload("Favorites").
				Find(&cars).Error; err != nil {
				log.Printf("Error retrieving Cars: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			formatted := make([]gin.H, 0, len(cars))
			for i := range cars {
				car := &cars[i]
				if !utils.IsCarAvailable(car.Bookings, searchStart, searchEnd) {
					continue
				}
				item := customerCarView(car, 0)
				if query.User == "admin" {
					item["plateNumber"] = car.PlateNumber
				}
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Cars fetched successfully", "cars": formatted})
		})
	return g
}

func customerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/customer", func(ctx *gin.Context) {
			var body types.CustomerCreateRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var existing models.Customer
			if err := conn.Where(&models.Customer{Name: body.Name, Contact: body.Contact}).First(&existing).Error; err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer already exist"})
				return
			}
			joiningDate := utils.FormatDate(time.Now())
			if body.JoiningDate != "" {
				if d, err := utils.ParseDate(body.JoiningDate); err == nil {
					joiningDate = utils.FormatDate(d)
				}
			}
			kycStatus := string(types.KYC_PENDING)
			if body.Address != "" && len(body.Documents) > 0 {
				kycStatus = string(types.KYC_VERIFIED)
			}
			customer := models.Customer{
				Name:        body.Name,
				Contact:     body.Contact,
				Address:     body.Address,
				FolderID:    body.FolderID,
				Email:       body.Email,
				JoiningDate: joiningDate,
				KycStatus:   kycStatus,
			}
			var documents []*models.Document
			err := conn.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&customer).Error; err != nil {
					return err
				}
				var err error
				documents, err = attachDocuments(tx, customer.ID, body.Documents)
				return err
			})
			if err != nil {
				log.Printf("Error creating customer: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Customer created successfully",
				"id":        customer.ID,
				"documents": documents,
			})
		}).
		POST("/customer/booking", func(ctx *gin.Context) {
			var body types.CustomerBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ?", body.CarID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
				return
			}
			if car.Status == string(types.CAR_PAUSED) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
				return
			}
			startDate, err := utils.ParseDate(body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			endDate, err := utils.ParseDate(body.EndDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			// rental requests go in as Requested even when dates overlap; the
			// host decides at consent time
			booking := models.Booking{
				Status:           string(types.BOOKING_REQUESTED),
				StartDate:        utils.FormatDate(startDate),
				EndDate:          utils.FormatDate(endDate),
				StartTime:        body.StartTime,
				EndTime:          body.EndTime,
				AllDay:           body.AllDay,
				CarID:            car.ID,
				CustomerID:       customerId,
				UserID:           car.UserID,
				DailyRentalPrice: car.Price,
				TotalEarnings:    body.TotalAmount,
				Type:             body.Type,
				OTP:              utils.GenerateOTP(),
			}
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
				log.Printf("Error creating booking request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Booking created successfully",
				"bookingId": booking.ID,
				"folderId":  booking.BookingFolderID,
			})
		}).
		POST("/customer/booking-payment/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking id is required"})
				return
			}
			var body types.BookingPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.Where("id = ? AND customer_id = ?", params.ID, customerId).First(&booking).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
				return
			}
			updates := map[string]any{
				"payment_method":  body.PaymentMethod,
				"advance_payment": body.AdvancePayment,
			}
			if body.Status != "" {
				updates["status"] = body.Status
			}
			if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking payment updated successfully"})
		}).
		POST("/customer/favorite-car/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var car models.Car
			if err := conn.Where("id = ?", params.ID).First(&car).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
				return
			}
			favorite := models.FavoriteCar{CustomerID: customerId, CarID: car.ID}
			if err := conn.Create(&favorite).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Favorite car added successfully",
				"carId":   car.ID,
				"carName": carDisplayName(&car),
			})
		}).
		POST("/customer/update-kyc", func(ctx *gin.Context) {
			conn := db.GetDb()
			var customers []models.Customer
			if err := conn.Preload("Documents").Find(&customers).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			for _, customer := range customers {
				if customer.Address != "" && len(customer.Documents) > 0 && customer.Email == "" {
					if err := conn.Model(&models.Customer{}).Where("id = ?", customer.ID).Update("kyc_status", string(types.KYC_UNDER_REVIEW)).Error; err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "KYC status updated successfully"})
		}).
		GET("/customer/all", func(ctx *gin.Context) {
			var customers []models.Customer
			conn := db.GetDb()
			if err := conn.Preload("Documents").Find(&customers).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Customer fetched successfully", "customers": customers})
		}).
		GET("/customer/me", func(ctx *gin.Context) {
			customerId := ctx.GetUint("id")
			var customer models.Customer
			conn := db.GetDb()
			if err := conn.Preload("Documents").Where("id = ?", customerId).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":  "Customer fetched successfully",
				"id":       customer.ID,
				"name":     customer.Name,
				"imageUrl": customer.ImageURL,
				"customer": gin.H{
					"id":        customer.ID,
					"name":      customer.Name,
					"contact":   customer.Contact,
					"address":   customer.Address,
					"email":     customer.Email,
					"folderId":  customer.FolderID,
					"documents": customer.Documents,
				},
				"isPassword": customer.Password != "",
			})
		}).
		GET("/customer/kyc-status", func(ctx *gin.Context) {
			customerId := ctx.GetUint("id")
			var customer models.Customer
			conn := db.GetDb()
			if err := conn.Where("id = ?", customerId).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":      "Customer fetched successfully",
				"kycStatus":    customer.KycStatus,
				"approvedFlag": customer.ApprovedFlag,
			})
		}).
		GET("/customer/check-otp/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			otp := ctx.Query("otp")
			if otp == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "OTP is required"})
				return
			}
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.Where("id = ?", params.ID).First(&booking).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "OTP checked successfully",
				"isCorrect": booking.OTP == otp,
			})
		}).
		GET("/customer/booking/all", func(ctx *gin.Context) {
			customerId := ctx.GetUint("id")
			var bookings []models.Booking
			conn := db.GetDb()
			if err := conn.
				Preload("Car.Photos").
				Where(&models.Booking{CustomerID: customerId}).
				Order("id asc").
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
					"price":     booking.TotalEarnings,
					"type":      booking.Type,
				}
				if booking.Car != nil {
					item["carId"] = booking.Car.ID
					item["carImageUrl"] = firstPhotoURL(booking.Car)
					item["carName"] = carDisplayName(booking.Car)
					item["carPlateNumber"] = booking.Car.PlateNumber
				}
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings fetched successfully", "bookings": formatted})
		}).
		GET("/customer/favorite-cars", func(ctx *gin.Context) {
			customerId := ctx.GetUint("id")
			var favorites []models.FavoriteCar
			conn := db.GetDb()
			if err := conn.
				Preload("Car.Photos").
				Where(&models.FavoriteCar{CustomerID: customerId}).
				Find(&favorites).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			formatted := make([]gin.H, 0, len(favorites))
			for _, favorite := range favorites {
				if favorite.Car == nil || favorite.Car.Status == string(types.CAR_PAUSED) {
					continue
				}
				item := customerCarView(favorite.Car, customerId)
				item["favorite"] = true
				formatted = append(formatted, item)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Favorite cars fetched successfully", "favoriteCars": formatted})
		}).
		PUT("/customer/me", func(ctx *gin.Context) {
			var body types.CustomerProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Where("id = ?", customerId).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Contact != nil {
				updates["contact"] = *body.Contact
			}
			if body.Address != nil {
				updates["address"] = *body.Address
			}
			if body.Email != nil {
				updates["email"] = *body.Email
			}
			if body.ImageURL != nil {
				updates["image_url"] = *body.ImageURL
			}
			if len(updates) > 0 {
				if err := conn.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message": "Customer updated successfully",
				"id":      customer.ID,
				"name":    customer.Name,
				"contact": customer.Contact,
			})
		}).
		PUT("/customer/me/update-password", func(ctx *gin.Context) {
			var body types.CustomerUpdatePasswordRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Where("id = ?", customerId).First(&customer).Error; err != nil {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			if customer.Password != "" && (body.CurrPassword == nil || customer.Password != *body.CurrPassword) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Invalid current password"})
				return
			}
			if err := conn.Model(&models.Customer{}).Where("id = ?", customer.ID).Update("password", body.NewPassword).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
		}).
		PUT("/customer/kyc-approve-flag", func(ctx *gin.Context) {
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			if err := conn.Model(&models.Customer{}).Where("id = ?", customerId).Update("approved_flag", false).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "KYC flag verified successfully"})
		}).
		PUT("/customer/verify-kyc/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Where("id = ?", params.ID).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
				return
			}
			if err := conn.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]any{
				"kyc_status":    string(types.KYC_VERIFIED),
				"approved_flag": true,
			}).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "KYC status updated successfully"})
		}).
		PUT("/customer/booking-cancel/:id", func(ctx *gin.Context) {
			var params types.BookingIDParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.Where("id = ? AND customer_id = ?", params.ID, customerId).First(&booking).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Booking not found"})
				return
			}
			if !utils.CanTransition(types.BookingStatus(booking.Status), types.BOOKING_CANCELLED) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot cancel a %s booking", booking.Status)})
				return
			}
			if err := conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
				"status":       string(types.BOOKING_CANCELLED),
				"cancelled_by": string(types.CANCELLED_BY_GUEST),
			}).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "BookingId": booking.ID})
		}).
		PUT("/customer/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CustomerUpdateRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Preload("Documents").Where("id = ?", params.ID).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
				return
			}

			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Contact != nil {
				updates["contact"] = *body.Contact
			}
			if body.Address != nil {
				updates["address"] = *body.Address
			}
			if body.FolderID != nil {
				updates["folder_id"] = *body.FolderID
			}
			if body.Email != nil {
				updates["email"] = *body.Email
			}
			if body.JoiningDate != nil {
				if d, err := utils.ParseDate(*body.JoiningDate); err == nil {
					updates["joining_date"] = utils.FormatDate(d)
				}
			}
			if body.KycStatus != nil {
				updates["kyc_status"] = *body.KycStatus
			}

			var documents []*models.Document
			err := conn.Transaction(func(tx *gorm.DB) error {
				for _, photo := range body.DeletedPhotos {
					if err := tx.Delete(&models.Document{}, "id = ?", photo.ID).Error; err != nil {
						return err
					}
				}
				var err error
				if documents, err = attachDocuments(tx, customer.ID, body.Documents); err != nil {
					return err
				}
				if len(updates) > 0 {
					return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error
				}
				return nil
			})
			if err != nil {
				log.Printf("Error updating customer %d: %s\n", customer.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(body.DeletedPhotos) > 0 {
				keys := make([]string, 0, len(body.DeletedPhotos))
				for _, photo := range body.DeletedPhotos {
					keys = append(keys, awslib.S3KeyFromURL(photo.URL))
				}
				if err := awslib.S3DeleteMultipleFiles(ctx, keys); err != nil {
					log.Printf("Error deleting customer photos %d: %s\n", customer.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":    "Customer updated successfully",
				"CustomerId": customer.ID,
				"documents":  documents,
			})
		}).
		DELETE("/customer/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Preload("Documents").Preload("Bookings").Where("id = ?", params.ID).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
				return
			}
			if len(customer.Bookings) > 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer has bookings, cannot be deleted"})
				return
			}
			err := conn.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Document{}).Error; err != nil {
					return err
				}
				return tx.Delete(&models.Customer{}, "id = ?", customer.ID).Error
			})
			if err != nil {
				log.Printf("Error deleting customer %d: %s\n", customer.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(customer.Documents) > 0 {
				keys := make([]string, 0, len(customer.Documents))
				for _, document := range customer.Documents {
					keys = append(keys, awslib.S3KeyFromURL(document.URL))
				}
				if err := awslib.S3DeleteMultipleFiles(ctx, keys); err != nil {
					log.Printf("Error deleting customer documents %d: %s\n", customer.ID, err.Error())
				}
			}
			if customer.FolderID != "" {
				if err := awslib.S3DeleteFolder(ctx, customer.FolderID); err != nil {
					log.Printf("Error deleting customer folder %d: %s\n", customer.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully", "CustomerId": customer.ID})
		}).
		DELETE("/customer/:id/documents/all", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var customer models.Customer
			if err := conn.Preload("Documents").Where("id = ?", params.ID).First(&customer).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
				return
			}
			if err := conn.Where("customer_id = ?", customer.ID).Delete(&models.Document{}).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(customer.Documents) > 0 {
				keys := make([]string, 0, len(customer.Documents))
				for _, document := range customer.Documents {
					keys = append(keys, awslib.S3KeyFromURL(document.URL))
				}
				if err := awslib.S3DeleteMultipleFiles(ctx, keys); err != nil {
					log.Printf("Error deleting customer documents %d: %s\n", customer.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully", "CustomerId": customer.ID})
		}).
		DELETE("/customer/document/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var document models.Document
			if err := conn.Where("id = ?", params.ID).First(&document).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Document not found"})
				return
			}
			if err := conn.Delete(&models.Document{}, "id = ?", document.ID).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if document.URL != "" {
				if err := awslib.S3DeleteFile(ctx, awslib.S3KeyFromURL(document.URL)); err != nil {
					log.Printf("Error deleting document file %d: %s\n", document.ID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully", "DocumentId": document.ID})
		}).
		DELETE("/customer/favorite-car/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			conn := db.GetDb()
			var favorite models.FavoriteCar
			if err := conn.Where("car_id = ? AND customer_id = ?", params.ID, customerId).First(&favorite).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
				return
			}
			if err := conn.Delete(&models.FavoriteCar{}, "id = ?", favorite.ID).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Favorite car removed successfully"})
		})
	return g
}

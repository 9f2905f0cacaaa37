package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type BookingStatus string

const (
	BOOKING_REQUESTED BookingStatus = "Requested"
	BOOKING_UPCOMING  BookingStatus = "Upcoming"
	BOOKING_ONGOING   BookingStatus = "Ongoing"
	BOOKING_COMPLETED BookingStatus = "Completed"
	BOOKING_CANCELLED BookingStatus = "Cancelled"
)

type CancelledBy string

const (
	CANCELLED_BY_HOST  CancelledBy = "host"
	CANCELLED_BY_GUEST CancelledBy = "guest"
)

type CarStatus string

const (
	CAR_ACTIVE CarStatus = "active"
	CAR_PAUSED CarStatus = "pause"
)

type KycStatus string

const (
	KYC_PENDING      KycStatus = "pending"
	KYC_UNDER_REVIEW KycStatus = "under review"
	KYC_VERIFIED     KycStatus = "verified"
)

type Role string

const (
	ROLE_HOST     Role = "host"
	ROLE_CUSTOMER Role = "customer"
)

type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// EarningsSummary holds the nested revenue windows for one car. A booking
// whose start date qualifies for the six-month window may also count towards
// the one-month and current-month figures.
type EarningsSummary struct {
	ThisMonth float64 `json:"thisMonth"`
	OneMonth  float64 `json:"oneMonth"`
	SixMonths float64 `json:"sixMonths"`
}

type DocumentInput struct {
	Name    string `json:"name" binding:"required"`
	URL     string `json:"url" binding:"required"`
	Type    string `json:"type" binding:"required"`
	DocType string `json:"docType,omitempty"`
}

type DocumentRef struct {
	ID  uint   `json:"id" binding:"required"`
	URL string `json:"url" binding:"required"`
}

type CarImageInput struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type BookingIDParams struct {
	ID string `uri:"id" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RoleQuery struct {
	Role string `form:"role,omitempty"`
	OTP  string `form:"otp,omitempty"`
}

type CreateBookingRequestBody struct {
	CarID            uint     `json:"carId" binding:"required"`
	CustomerID       uint     `json:"customerId,omitempty"`
	CustomerName     string   `json:"customerName,omitempty"`
	CustomerContact  string   `json:"customerContact,omitempty"`
	StartDate        string   `json:"startDate" binding:"required,rentaldate"`
	EndDate          string   `json:"endDate" binding:"required,rentaldate"`
	StartTime        string   `json:"startTime" binding:"required,clocktime"`
	EndTime          string   `json:"endTime" binding:"required,clocktime"`
	AllDay           bool     `json:"allDay,omitempty"`
	DailyRentalPrice float64  `json:"dailyRentalPrice,omitempty"`
	TotalAmount      *float64 `json:"totalAmount,omitempty"`
	Advance          *float64 `json:"advance,omitempty"`
	Type             string   `json:"type,omitempty"`
}

type BookingUpdateRequestBody struct {
	StartDate          *string         `json:"startDate,omitempty" binding:"omitempty,rentaldate"`
	EndDate            *string         `json:"endDate,omitempty" binding:"omitempty,rentaldate"`
	StartTime          *string         `json:"startTime,omitempty" binding:"omitempty,clocktime"`
	EndTime            *string         `json:"endTime,omitempty" binding:"omitempty,clocktime"`
	AllDay             *bool           `json:"allDay,omitempty"`
	Status             *string         `json:"status,omitempty"`
	CarID              *uint           `json:"carId,omitempty"`
	SecurityDeposit    *float64        `json:"securityDeposit,omitempty"`
	DailyRentalPrice   *float64        `json:"dailyRentalPrice,omitempty"`
	PaymentMethod      *string         `json:"paymentMethod,omitempty"`
	AdvancePayment     *float64        `json:"advancePayment,omitempty"`
	OdometerReading    *float64        `json:"odometerReading,omitempty"`
	EndOdometerReading *float64        `json:"endOdometerReading,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	Type               *string         `json:"type,omitempty"`
	SelfieURL          *string         `json:"selfieUrl,omitempty"`
	TotalAmount        *float64        `json:"totalAmount,omitempty"`
	CustomerName       *string         `json:"customerName,omitempty"`
	CustomerAddress    *string         `json:"customerAddress,omitempty"`
	CustomerContact    *string         `json:"customerContact,omitempty"`
	Documents          []DocumentInput `json:"documents,omitempty"`
	CarImages          []CarImageInput `json:"carImages,omitempty"`
}

type BookingStartRequestBody struct {
	SelectedCar           uint     `json:"selectedCar" binding:"required"`
	CustomerName          string   `json:"customerName" binding:"required"`
	CustomerContact       string   `json:"customerContact,omitempty"`
	CustomerAddress       string   `json:"customerAddress,omitempty"`
	CustomerMail          string   `json:"customerMail,omitempty"`
	StartDate             string   `json:"startDate" binding:"required,rentaldate"`
	StartTime             string   `json:"startTime" binding:"required,clocktime"`
	ReturnDate            string   `json:"returnDate" binding:"required,rentaldate"`
	ReturnTime            string   `json:"returnTime" binding:"required,clocktime"`
	SecurityDeposit       *float64 `json:"securityDeposit,omitempty"`
	OdometerReading       *float64 `json:"odometerReading,omitempty"`
	Fastrack              *float64 `json:"fastrack,omitempty"`
	BookingAmountReceived *float64 `json:"bookingAmountReceived,omitempty"`
	TotalAmount           *float64 `json:"totalAmount,omitempty"`
	PaymentMethod         string   `json:"paymentMethod,omitempty"`
	Notes                 string   `json:"notes,omitempty"`
	DailyRentalPrice      float64  `json:"dailyRentalPrice,omitempty"`
}

type BookingStartDocumentRequestBody struct {
	SelfieURL string          `json:"selfieUrl,omitempty"`
	Documents []DocumentInput `json:"documents,omitempty"`
	CarImages []CarImageInput `json:"carImages,omitempty"`
}

type BookingEndRequestBody struct {
	EndDate         string   `json:"endDate" binding:"required,rentaldate"`
	EndTime         string   `json:"endTime" binding:"required,clocktime"`
	OdometerReading *float64 `json:"odometerReading,omitempty"`
	Fastrack        *float64 `json:"fastrack,omitempty"`
}

type ConsentRequestBody struct {
	Action string `json:"action" binding:"required"`
}

type MultipleBookingDeleteRequestBody struct {
	BookingIDs []string `json:"bookingIds" binding:"required,min=1"`
}

type BookingImport struct {
	CustomerName     string   `json:"customerName" binding:"required"`
	CustomerContact  string   `json:"customerContact,omitempty"`
	CustomerAddress  string   `json:"customerAddress,omitempty"`
	StartDate        string   `json:"startDate" binding:"required,rentaldate"`
	EndDate          string   `json:"endDate" binding:"required,rentaldate"`
	StartTime        string   `json:"startTime" binding:"required,clocktime"`
	EndTime          string   `json:"endTime" binding:"required,clocktime"`
	AllDay           bool     `json:"allDay,omitempty"`
	Status           string   `json:"status" binding:"required"`
	CarID            uint     `json:"carId" binding:"required"`
	SecurityDeposit  *float64 `json:"securityDeposit,omitempty"`
	DailyRentalPrice float64  `json:"dailyRentalPrice,omitempty"`
	AdvancePayment   *float64 `json:"advancePayment,omitempty"`
	TotalEarnings    *float64 `json:"totalEarnings,omitempty"`
	PaymentMethod    string   `json:"paymentMethod,omitempty"`
	OdometerReading  *float64 `json:"odometerReading,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

type MultipleBookingRequestBody []BookingImport

type CreateCarRequestBody struct {
	Brand       string  `json:"brand" binding:"required"`
	Model       string  `json:"model" binding:"required"`
	PlateNumber string  `json:"plateNumber" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Mileage     *uint   `json:"mileage,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CarFolderID string  `json:"carFolderId,omitempty"`
	Seats       *uint   `json:"seats,omitempty"`
	Fuel        string  `json:"fuel,omitempty"`
	Gear        string  `json:"gear,omitempty"`
}

type UpdateCarRequestBody struct {
	Color    *string  `json:"color,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Mileage  *uint    `json:"mileage,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

type ChangeColorRequestBody struct {
	Color string `json:"color" binding:"required"`
}

type CalendarUpdateRequestBody struct {
	StartDate    *string `json:"startDate,omitempty" binding:"omitempty,rentaldate"`
	EndDate      *string `json:"endDate,omitempty" binding:"omitempty,rentaldate"`
	StartTime    *string `json:"startTime,omitempty" binding:"omitempty,clocktime"`
	EndTime      *string `json:"endTime,omitempty" binding:"omitempty,clocktime"`
	AllDay       *bool   `json:"allDay,omitempty"`
	CustomerName *string `json:"customerName,omitempty"`
}

type CustomerSignupRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email,omitempty"`
}

type SigninRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password,omitempty"`
	Provider string `json:"provider,omitempty"`
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type CustomerCreateRequestBody struct {
	Name        string          `json:"name" binding:"required"`
	Contact     string          `json:"contact" binding:"required"`
	Address     string          `json:"address,omitempty"`
	FolderID    string          `json:"folderId,omitempty"`
	Email       string          `json:"email,omitempty"`
	JoiningDate string          `json:"joiningDate,omitempty" binding:"omitempty,rentaldate"`
	Documents   []DocumentInput `json:"documents,omitempty"`
}

type CustomerUpdateRequestBody struct {
	Name          *string         `json:"name,omitempty"`
	Contact       *string         `json:"contact,omitempty"`
	Address       *string         `json:"address,omitempty"`
	FolderID      *string         `json:"folderId,omitempty"`
	Email         *string         `json:"email,omitempty"`
	JoiningDate   *string         `json:"joiningDate,omitempty" binding:"omitempty,rentaldate"`
	KycStatus     *string         `json:"kycStatus,omitempty"`
	Documents     []DocumentInput `json:"documents,omitempty"`
	DeletedPhotos []DocumentRef   `json:"deletedPhotos,omitempty"`
}

type CustomerProfileRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Address  *string `json:"address,omitempty"`
	Email    *string `json:"email,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type CustomerUpdatePasswordRequestBody struct {
	CurrPassword *string `json:"currPassword,omitempty"`
	NewPassword  string  `json:"newPassword" binding:"required"`
}

type CustomerBookingRequestBody struct {
	CarID       uint     `json:"carId" binding:"required"`
	StartDate   string   `json:"startDate" binding:"required,rentaldate"`
	EndDate     string   `json:"endDate" binding:"required,rentaldate"`
	StartTime   string   `json:"startTime" binding:"required,clocktime"`
	EndTime     string   `json:"endTime" binding:"required,clocktime"`
	AllDay      bool     `json:"allDay,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
	Type        string   `json:"type,omitempty"`
}

type BookingPaymentRequestBody struct {
	AdvancePayment *float64 `json:"advancePayment" binding:"required"`
	PaymentMethod  string   `json:"paymentMethod" binding:"required"`
	Status         string   `json:"status,omitempty"`
}

type FilterCarsQuery struct {
	StartDate string `form:"startDate" binding:"required,rentaldate"`
	EndDate   string `form:"endDate" binding:"required,rentaldate"`
	StartTime string `form:"startTime" binding:"required,clocktime"`
	EndTime   string `form:"endTime" binding:"required,clocktime"`
	User      string `form:"user,omitempty"`
}

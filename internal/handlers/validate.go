package handlers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^(\+84|0)[0-9]{9,10}$`)
	codeRegex  = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)

	// VND amounts are typed with "." or "," between thousands.
	dotGroups   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	commaGroups = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func (f *Form) email(field string) {
	if v := f.Get(field); v != "" && !isValidEmail(v) {
		f.Fail(field, "Email không hợp lệ.")
	}
}

func (f *Form) phone(field string) {
	if v := strings.ReplaceAll(f.Get(field), " ", ""); v != "" && !phoneRegex.MatchString(v) {
		f.Fail(field, "Số điện thoại không hợp lệ.")
	}
}

func (f *Form) intField(field string, min int) int {
	v := f.Get(field)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.Fail(field, "Phải là số nguyên.")
		return 0
	}
	if n < min {
		f.Fail(field, "Giá trị phải lớn hơn hoặc bằng "+strconv.Itoa(min)+".")
	}
	return n
}

// money reads a VND amount. "1.500.000" and "1,500,000" are grouped
// thousands; any other "." is the decimal point.
func (f *Form) money(field string) decimal.Decimal {
	v := strings.ReplaceAll(f.Get(field), " ", "")
	switch {
	case dotGroups.MatchString(v):
		v = strings.ReplaceAll(v, ".", "")
	case commaGroups.MatchString(v):
		v = strings.ReplaceAll(v, ",", "")
	}
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.Fail(field, "Số tiền không hợp lệ.")
		return decimal.Zero
	}
	if d.IsNegative() {
		f.Fail(field, "Không được âm.")
	}
	return d
}

// moneyValue renders an amount so money reads it back unchanged. A value
// like 100.123 would look grouped, so it gets a trailing zero.
func moneyValue(d decimal.Decimal) string {
	s := d.String()
	if dotGroups.MatchString(s) {
		s += "0"
	}
	return s
}

func (f *Form) number(field string) decimal.Decimal {
	v := strings.Replace(f.Get(field), ",", ".", 1)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.Fail(field, "Phải là số.")
		return decimal.Zero
	}
	return d
}

func (f *Form) date(field string) models.Date {
	v := f.Get(field)
	if v == "" {
		return models.Date{}
	}
	d, err := models.ParseDate(v)
	if err != nil {
		f.Fail(field, "Ngày không hợp lệ.")
	}
	return d
}

// dateRange checks both dates are present and end is not before start.
func (f *Form) dateRange(startField, endField string) (models.Date, models.Date) {
	f.Required(startField, endField)
	start, end := f.date(startField), f.date(endField)
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		f.Fail(endField, "Ngày kết thúc phải sau hoặc bằng ngày bắt đầu.")
	}
	return start, end
}

func (f *Form) checked(field string) bool {
	switch f.Get(field) {
	case "on", "true", "1":
		return true
	}
	return false
}

func categoryFromForm(f *Form) models.Category {
	f.Required("name")
	if len([]rune(f.Get("name"))) > 100 {
		f.Fail("name", "Tên tối đa 100 ký tự.")
	}
	return models.Category{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		Position:    f.intField("position", 0),
	}
}

func productFromForm(f *Form) models.Product {
	f.Required("name", "brand", "price", "categoryId")
	p := models.Product{
		Name:        f.Get("name"),
		Brand:       f.Get("brand"),
		Price:       f.money("price"),
		Stock:       f.intField("stock", 0),
		CategoryID:  f.intField("categoryId", 1),
		Description: f.Get("description"),
	}
	if f.Get("price") != "" && !p.Price.IsPositive() {
		f.Fail("price", "Giá phải lớn hơn 0.")
	}
	if f.Get("discountedPrice") != "" {
		dp := f.money("discountedPrice")
		if dp.GreaterThan(p.Price) {
			f.Fail("discountedPrice", "Giá khuyến mãi không được lớn hơn giá gốc.")
		}
		p.DiscountedPrice = &dp
	}
	return p
}

func voucherFromForm(f *Form) models.Voucher {
	f.Required("code", "discountKind", "discountValue", "remaining")
	v := models.Voucher{
		Code:         strings.ToUpper(f.Get("code")),
		Description:  f.Get("description"),
		DiscountKind: models.DiscountKind(f.Get("discountKind")),
		Remaining:    f.intField("remaining", 0),
		Active:       f.checked("active"),
	}
	if v.DiscountKind == models.DiscountFixed {
		v.DiscountValue = f.money("discountValue")
	} else {
		v.DiscountValue = f.number("discountValue")
	}
	if v.Code != "" && !codeRegex.MatchString(v.Code) {
		f.Fail("code", "Mã gồm 3-20 ký tự chữ, số, gạch ngang.")
	}
	switch v.DiscountKind {
	case models.DiscountPercentage:
		if !v.DiscountValue.IsPositive() || v.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			f.Fail("discountValue", "Phần trăm giảm phải trong khoảng 1-100.")
		}
	case models.DiscountFixed:
		if !v.DiscountValue.IsPositive() {
			f.Fail("discountValue", "Số tiền giảm phải lớn hơn 0.")
		}
	default:
		f.Fail("discountKind", "Loại giảm giá không hợp lệ.")
	}
	v.StartDate, v.EndDate = f.dateRange("startDate", "endDate")
	return v
}

func promotionFromForm(f *Form) models.Promotion {
	f.Required("name", "percentOff")
	p := models.Promotion{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		PercentOff:  f.number("percentOff"),
	}
	if f.Get("percentOff") != "" && (!p.PercentOff.IsPositive() || p.PercentOff.GreaterThan(decimal.NewFromInt(100))) {
		f.Fail("percentOff", "Phần trăm giảm phải trong khoảng 1-100.")
	}
	p.StartDate, p.EndDate = f.dateRange("startDate", "endDate")
	return p
}

func accountFromForm(f *Form) models.Account {
	f.Required("name", "email")
	f.email("email")
	f.phone("phone")
	return models.Account{
		Name:          f.Get("name"),
		Email:         f.Get("email"),
		Phone:         strings.ReplaceAll(f.Get("phone"), " ", ""),
		Address:       f.Get("address"),
		AccountTypeID: f.intField("accountTypeId", 0),
	}
}

func contactFromForm(f *Form) models.Contact {
	f.Required("name", "email", "message")
	f.email("email")
	f.phone("phone")
	if len([]rune(f.Get("message"))) > 2000 {
		f.Fail("message", "Nội dung tối đa 2000 ký tự.")
	}
	return models.Contact{
		Name:    f.Get("name"),
		Email:   f.Get("email"),
		Phone:   strings.ReplaceAll(f.Get("phone"), " ", ""),
		Message: f.Get("message"),
	}
}

func registerFromForm(f *Form) (name, email, phone, password, confirm string) {
	f.Required("name", "email", "password", "confirmPassword")
	f.email("email")
	f.phone("phone")
	if p := f.Values.Get("password"); p != "" && len(p) < 6 {
		f.Fail("password", "Mật khẩu phải có ít nhất 6 ký tự.")
	}
	if f.Values.Get("password") != f.Values.Get("confirmPassword") {
		f.Fail("confirmPassword", "Mật khẩu xác nhận không khớp.")
	}
	return f.Get("name"), f.Get("email"), strings.ReplaceAll(f.Get("phone"), " ", ""),
		f.Values.Get("password"), f.Values.Get("confirmPassword")
}

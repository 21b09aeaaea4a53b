package i18n

// farsiMessages is keyed by canonical error code.
var farsiMessages = map[string]string{
	"invalid":                 "مقدار این فیلد معتبر نیست.",
	"invalid_input":           "ورودی نامعتبر است.",
	"required":                "این فیلد الزامی است.",
	"unique":                  "مقدار این فیلد باید یکتا باشد.",
	"does_not_exist":          "شیء مورد نظر وجود ندارد.",
	"invalid_query_parameter": "پارامتر کوئری معتبر نیست.",
	"parse_error":             "درخواست نادرست است.",
	"not_found":               "یافت نشد.",
	"method_not_allowed":      "این متد برای درخواست مجاز نیست.",
	"not_acceptable":          "امکان پاسخ با قالب درخواست‌شده وجود ندارد.",
	"unsupported_media_type":  "نوع محتوای درخواست پشتیبانی نمی‌شود.",
	"protected_error":         "این عملیات به دلیل وجود اشیای وابسته‌ی محافظت‌شده قابل انجام نیست.",
	"not_authenticated":       "اطلاعات احراز هویت ارسال نشده است.",
	"authentication_failed":   "اطلاعات احراز هویت نادرست است.",
	"token_expired":           "توکن منقضی شده است.",
	"permission_denied":       "شما اجازه‌ی انجام این عملیات را ندارید.",
	"throttled":               "تعداد درخواست‌ها بیش از حد مجاز است.",
	"error":                   "خطای سرور رخ داده است.",
	"multiple":                "چند خطا رخ داده است. جزئیات را در فهرست ببینید.",
	"invalid_email":           "یک آدرس ایمیل معتبر وارد کنید.",
	"invalid_phone_number":    "شماره تلفن معتبر نیست.",
	"invalid_national_code":   "کد ملی معتبر نیست.",
	"min_length":              "طول این فیلد کمتر از حد مجاز است.",
	"max_length":              "طول این فیلد بیشتر از حد مجاز است.",
	"invalid_choice":          "مقدار انتخاب‌شده معتبر نیست.",
}

package i18n

// Keys - канонический набор ключей. Каждая таблица обязана содержать ровно их.
var Keys = []string{
	"nav.home",
	"nav.technologies",
	"nav.materials",
	"nav.portfolio",
	"nav.order",
	"nav.contacts",

	"hero.title",
	"hero.subtitle",
	"hero.cta",

	"tech.fdm",
	"tech.sla",
	"tech.dlp",

	"materials.pla",
	"materials.abs",
	"materials.petg",
	"materials.tpu",
	"materials.nylon",
	"materials.resin",

	"order.title",
	"order.length",
	"order.width",
	"order.height",
	"order.plastic",
	"order.color",
	"order.infill",
	"order.quantity",
	"order.customer_type",
	"order.individual",
	"order.legal",
	"order.company_name",
	"order.inn",
	"order.email",
	"order.phone",
	"order.description",
	"order.file",
	"order.submit",
	"order.submitting",

	"feedback.success",
	"feedback.validation",
	"feedback.file_too_large",
	"feedback.network",
	"feedback.server",
	"feedback.rate_limited",
	"feedback.in_progress",

	"admin.login_failed",
	"admin.network_error",
	"admin.server_error",
	"admin.confirm_delete",
	"admin.confirm_delete_item",
	"admin.import_done",
	"admin.status_updated",
	"admin.deleted",
	"admin.session_ended",

	"status.new",
	"status.processing",
	"status.completed",
	"status.cancelled",

	"contacts.email",
	"contacts.phone",
	"contacts.address",
}

// Ключи, на которые ссылается код.
const (
	KeyFeedbackSuccess      = "feedback.success"
	KeyFeedbackValidation   = "feedback.validation"
	KeyFeedbackFileTooLarge = "feedback.file_too_large"
	KeyFeedbackNetwork      = "feedback.network"
	KeyFeedbackServer       = "feedback.server"
	KeyFeedbackRateLimited  = "feedback.rate_limited"
	KeyFeedbackInProgress   = "feedback.in_progress"

	KeyAdminLoginFailed       = "admin.login_failed"
	KeyAdminNetworkError      = "admin.network_error"
	KeyAdminServerError       = "admin.server_error"
	KeyAdminConfirmDelete     = "admin.confirm_delete"
	KeyAdminConfirmDeleteItem = "admin.confirm_delete_item"
	KeyAdminImportDone        = "admin.import_done"
	KeyAdminStatusUpdated     = "admin.status_updated"
	KeyAdminDeleted           = "admin.deleted"
	KeyAdminSessionEnded      = "admin.session_ended"

	KeyContactsEmail = "contacts.email"
)

// StatusKey возвращает ключ подписи статуса заявки.
func StatusKey(status string) string {
	return "status." + status
}

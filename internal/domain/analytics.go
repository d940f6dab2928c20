package domain

type AnalyticsEvent string

const (
	EventPageView = AnalyticsEvent("page_view")

	EventProfileView  = AnalyticsEvent("profile_view")
	EventProfileShare = AnalyticsEvent("profile_share")
	EventProfilePrint = AnalyticsEvent("profile_print")

	EventEmailClick      = AnalyticsEvent("email_click")
	EventPhoneClick      = AnalyticsEvent("phone_click")
	EventMeetingSchedule = AnalyticsEvent("meeting_schedule")

	EventLinkedInClick  = AnalyticsEvent("linkedin_click")
	EventGitHubClick    = AnalyticsEvent("github_click")
	EventPortfolioClick = AnalyticsEvent("portfolio_click")
	EventResumeClick    = AnalyticsEvent("resume_click")

	EventQRCodeGenerated = AnalyticsEvent("qr_code_generated")
	EventQRCodeScanned   = AnalyticsEvent("qr_code_scanned")

	EventCardCreated = AnalyticsEvent("card_created")
	EventCardEdited  = AnalyticsEvent("card_edited")
	EventCardDeleted = AnalyticsEvent("card_deleted")

	EventImageUploaded     = AnalyticsEvent("image_uploaded")
	EventImageUploadFailed = AnalyticsEvent("image_upload_failed")

	EventErrorOccurred = AnalyticsEvent("error_occurred")

	EventButtonClick     = AnalyticsEvent("button_click")
	EventFormSubmit      = AnalyticsEvent("form_submit")
	EventSearchPerformed = AnalyticsEvent("search_performed")
)

var knownEvents = map[AnalyticsEvent]struct{}{
	EventPageView: {}, EventProfileView: {}, EventProfileShare: {}, EventProfilePrint: {},
	EventEmailClick: {}, EventPhoneClick: {}, EventMeetingSchedule: {},
	EventLinkedInClick: {}, EventGitHubClick: {}, EventPortfolioClick: {}, EventResumeClick: {},
	EventQRCodeGenerated: {}, EventQRCodeScanned: {},
	EventCardCreated: {}, EventCardEdited: {}, EventCardDeleted: {},
	EventImageUploaded: {}, EventImageUploadFailed: {},
	EventErrorOccurred: {},
	EventButtonClick: {}, EventFormSubmit: {}, EventSearchPerformed: {},
}

func (e AnalyticsEvent) Valid() bool {
	_, ok := knownEvents[e]
	return ok
}

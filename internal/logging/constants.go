package logging

// Standardized field names for structured logging. Keeping these consistent
// makes chat/adapter activity easy to filter in the logs.
const (
	FieldChatID    = "chat_id"
	FieldUserID    = "user_id"
	FieldUser      = "user"
	FieldMode      = "mode"
	FieldCommand   = "command"
	FieldAction    = "action"
	FieldQuestion  = "question_field"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldFlat      = "flat_number"
	FieldSheet     = "sheet"
	FieldPeriod    = "period"
	FieldFolder    = "folder"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldCount     = "count"
)

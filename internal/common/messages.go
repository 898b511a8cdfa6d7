package common

// Fixed user-facing notifications. Server-supplied messages take precedence
// wherever the backend provides one.
const (
	MsgGenericError    = "Something went wrong. Please try again."
	MsgLoginRequired   = "You need to log in to use this feature."
	MsgLoginDone       = "Logged in."
	MsgLoginFailed     = "Login failed. Please try again."
	MsgLogoutDone      = "Logged out."
	MsgEmailRequired   = "Please enter your email."
	MsgPasswordMissing = "Please enter your password."

	MsgResetConfirm      = "Reset your password?\nA new password will be sent to your email."
	MsgResetDone         = "Your password has been reset. Please check your email."
	MsgResetFailed       = "Password reset failed."
	MsgResetMailError    = "An error occurred while sending the password reset email."
	MsgResetError        = "An error occurred while resetting the password."
	MsgEmailNotFound     = "No account is registered with this email."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgPasswordChangeErr = "A problem occurred while changing the password."

	MsgSignupDone   = "Sign-up complete."
	MsgSignupFailed = "Sign-up failed."
	MsgServerError  = "A server error occurred."

	MsgAddressDeleteConfirm = "Delete this address?"
	MsgAddressFieldMissing  = "Please fill in the required address fields."

	MsgUploadFailed       = "file upload failed"
	MsgProductRegistered  = "Product registered."
	MsgProductFailed      = "An error occurred while registering the product."
	MsgProductTitleNeeded = "Please enter a product title."
	MsgProductPriceBad    = "Price must be a non-negative number."
	MsgProductStockBad    = "Stock must be a non-negative whole number."

	MsgCartAdded       = "Added to cart."
	MsgCartQuantityBad = "Quantity must be a positive whole number."
)

package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateEmail = errors.New("Email already registered")
var ErrDuplicatePhone = errors.New("Phone number already registered")
var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrInvalidStatus = errors.New("Invalid customer status")
var ErrNotAuthorized = errors.New("Not authorized to perform this operation")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrInsufficientBalance = errors.New("Insufficient balance")

// Allocation collisions. Callers retry with a freshly generated value.
var ErrDuplicateAccountNumber = errors.New("Account number already allocated")
var ErrDuplicateReference = errors.New("Reference number already used")

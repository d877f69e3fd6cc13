// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities, background job processing
// (using Redis/Asynq), email (Resend), payment (Stripe) and
// identity provider (Firebase/Clerk) integrations.
package lib

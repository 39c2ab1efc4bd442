// Package devmode provides shared configuration for development mode across
// the command-line tools and tests.
package devmode

// Token is the bearer token the app's mock sign-in hands out. Development
// backends accept it; it should never be used in production.
const Token = "mock-jwt-token"

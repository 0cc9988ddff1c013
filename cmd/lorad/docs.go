package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           lorad API
// @version         1.0
// @description     HTTP API for browsing a local LoRA checkpoint collection as merged variant cards.
//
// @contact.name   lorad maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

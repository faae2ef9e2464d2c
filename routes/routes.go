// Package routes cung cấp tất cả routing functions cho Blog Stats Service
//
// Cấu trúc:
// - api.go: API routes (/api/*), health, metrics
// - web.go: trang giới thiệu (/)
// - middleware.go: request ID, access log
//
// Sử dụng:
// routes.SetupAllRoutes(router, logger, metrics, blogController, adminController)
package routes

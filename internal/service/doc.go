// Package service provides application-level services for managing tasks
// and categories. Every operation is scoped to the calling user: services
// fetch resources by ID and compare the stored owner against the caller
// before acting, so a resource owned by another user is indistinguishable
// from one that does not exist.
package service

// @title           fusen API
// @version         1.0
// @description     Personal bookmark management service.
// @BasePath        /api/v1
package api

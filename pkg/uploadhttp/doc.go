// Package uploadhttp exposes upload slots over HTTP.
//
//	h := uploadhttp.NewHandler(spooler, uploadCfg, uploadhttp.WithLogger(log))
//	r := chi.NewRouter()
//	r.Mount("/uploads", h.Routes())
//
// A client posts multipart/form-data to /uploads/{key} with the file in field
// {key} and, optionally, a "name" field overriding the stored base name:
//
//	curl -F avatar=@me.png -F name=profile http://localhost:8080/uploads/avatar
//
// Answers are JSON: 201 with the stored file, 422 with the validation or
// placement messages, 400 when the request carries no usable file.
package uploadhttp

package handler

import (
	"net/http"
)

func (h *WebHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	data := newPageData("Home", sess)
	h.consumeFlashes(r, sess, &data)
	h.render(w, "index.html", data)
}

func (h *WebHandler) handleContact(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	h.render(w, "contact.html", newPageData("Contact", sess))
}

func (h *WebHandler) handleTestimonial(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	h.render(w, "testimonial.html", newPageData("Testimonial", sess))
}

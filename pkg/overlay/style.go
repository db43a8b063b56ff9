package overlay

import (
	"fmt"
	"strings"
)

const stylesheet = `
#browser-redirect-overlay {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  bottom: 0;
  background: linear-gradient(135deg, {{primary}} 0%, #725D78 100%);
  z-index: 999999;
  display: flex;
  align-items: center;
  justify-content: center;
  padding: 24px;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  animation: brOverlayFadeIn 0.3s ease-out {{delay}}ms both;
}
@keyframes brOverlayFadeIn { from { opacity: 0; } to { opacity: 1; } }
@keyframes brOverlayFadeOut { from { opacity: 1; } to { opacity: 0; } }
@keyframes brOverlaySlideUp {
  from { transform: translateY(30px); opacity: 0; }
  to { transform: translateY(0); opacity: 1; }
}
#browser-redirect-overlay .redirect-content {
  background: {{surface}};
  border-radius: 16px;
  padding: 32px 24px;
  max-width: 400px;
  width: 100%;
  text-align: center;
  animation: brOverlaySlideUp 0.4s ease-out {{delay}}ms both;
}
#browser-redirect-overlay .redirect-icon {
  width: 80px;
  height: 80px;
  margin: 0 auto 24px;
  padding: 20px;
  background: rgba(255, 255, 255, 0.1);
  border-radius: 50%;
  display: flex;
  align-items: center;
  justify-content: center;
  font-size: 40px;
  box-sizing: border-box;
}
#browser-redirect-overlay .redirect-title { font-size: 24px; font-weight: 700; margin-bottom: 16px; }
#browser-redirect-overlay .redirect-title-accent { color: {{accent}}; }
#browser-redirect-overlay .redirect-title-main { color: {{text}}; }
#browser-redirect-overlay .redirect-message {
  font-size: 16px;
  color: {{text}};
  line-height: 1.6;
  margin-bottom: 32px;
}
#browser-redirect-overlay .redirect-steps {
  background: rgba(255, 255, 255, 0.05);
  border-radius: 12px;
  margin: 0 0 24px;
  padding: 0;
  list-style: none;
  text-align: left;
}
#browser-redirect-overlay .redirect-step {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 16px;
  font-size: 14px;
  color: {{text}};
  border-bottom: 1px solid rgba(255, 255, 255, 0.1);
}
#browser-redirect-overlay .redirect-step:last-child { border-bottom: none; }
#browser-redirect-overlay .step-icon {
  width: 36px;
  height: 36px;
  background: rgba({{accent_rgb}}, 0.3);
  border-radius: 8px;
  display: flex;
  align-items: center;
  justify-content: center;
  flex-shrink: 0;
  margin-left: 12px;
  color: {{accent}};
  font-size: 18px;
}
#browser-redirect-overlay .redirect-button {
  background: rgba({{accent_rgb}}, 0.3);
  color: {{accent}};
  border: none;
  border-radius: 12px;
  padding: 16px 28px;
  font-size: 16px;
  font-weight: 600;
  cursor: pointer;
  width: 100%;
  box-sizing: border-box;
  text-decoration: none;
  transition: all 0.3s ease;
  display: flex;
  align-items: center;
  justify-content: center;
  gap: 8px;
}
#browser-redirect-overlay .redirect-button:hover {
  background: rgba({{accent_rgb}}, 0.4);
  transform: translateY(-2px);
}
#browser-redirect-overlay .redirect-button:active { transform: translateY(0); }
#browser-redirect-overlay .redirect-dismiss {
  background: transparent;
  color: rgba(255, 255, 255, 0.6);
  border: none;
  padding: 12px;
  font-size: 14px;
  cursor: pointer;
  margin-top: 12px;
}
`

// clientScript binds the overlay's own controls. It only touches the
// overlay element and defines no globals.
const clientScript = `(function(){
var o=document.getElementById('browser-redirect-overlay');if(!o)return;
var open=o.querySelector('[data-action="open"]');
if(open&&open.getAttribute('data-fallback')){open.addEventListener('click',function(){
var f=open.getAttribute('data-fallback');
setTimeout(function(){if(document.visibilityState==='visible'){window.location.href=f;}},1000);});}
var d=o.querySelector('[data-action="dismiss"]');
if(d){d.addEventListener('click',function(e){e.preventDefault();
o.style.animation='brOverlayFadeOut 0.3s ease-out forwards';
setTimeout(function(){if(o.parentNode){o.parentNode.removeChild(o);}},300);});}
})();`

// Stylesheet returns the overlay CSS for the view's colors and entrance delay.
func Stylesheet(v View) string {
	return strings.NewReplacer(
		"{{primary}}", v.Colors.Primary,
		"{{surface}}", v.Colors.Surface,
		"{{accent}}", v.Colors.Accent,
		"{{accent_rgb}}", hexToRGB(v.Colors.Accent),
		"{{text}}", v.Colors.Text,
		"{{delay}}", fmt.Sprintf("%d", v.EntranceDelay.Milliseconds()),
	).Replace(stylesheet)
}
